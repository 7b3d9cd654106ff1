package middleware

import (
	"fmt"
	"inspecteur/config"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, name, role, email string) (string, error) {
	ttl := time.Duration(config.AppConfig.TokenTTL) * time.Minute

	claims := jwt.MapClaims{
		"sub":    email,
		"userId": userID,
		"name":   name,
		"role":   role,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	// Get the token from the Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	// Extract the token part
	tokenString := authHeader[len("Bearer "):]

	// Parse and validate the token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})

	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	// JWT claims are typically stored as `float64`, so cast it
	userID := claims["userId"].(float64)
	c.Locals("userId", uint(userID))

	if role, ok := claims["role"].(string); ok {
		c.Locals("role", role)
	}

	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
