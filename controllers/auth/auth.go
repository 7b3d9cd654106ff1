package authController

import (
	"inspecteur/config"
	"inspecteur/database"
	"inspecteur/middleware"
	"inspecteur/models"
	emailService "inspecteur/services/email"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Signup registers a new student account
func Signup(emailSvc *emailService.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedSignup").(*struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		db := database.Database.Db

		// Check if email already exists
		if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}

		// Hash Password
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		newUser := models.User{
			Name:     reqData.Name,
			Email:    reqData.Email,
			Password: string(hashedPassword),
		}

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("Error saving user to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
		}

		// A failed welcome email never fails the signup
		emailSvc.SendWelcomeEmail(newUser.Email, newUser.Name)

		// Clean Response
		newUser.Password = ""

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
	}
}

// Login authenticates a user and issues a bearer token
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Check if the user is blocked
	if user.IsBlocked && user.BlockedUntil != nil && user.BlockedUntil.After(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	if user.LastFailedLogin != nil && time.Since(*user.LastFailedLogin) > 15*time.Minute {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		db.Save(&user)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		now := time.Now()
		user.LastFailedLogin = &now

		// Block user after 3 failed attempts
		if user.FailedLoginAttempts >= 3 {
			user.IsBlocked = true
			unblockTime := now.Add(15 * time.Minute)
			user.BlockedUntil = &unblockTime
		}

		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error saving failed login state: %v", err)
		}

		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Update last login time
	user.LastLogin = time.Now()
	user.FailedLoginAttempts = 0
	user.IsBlocked = false
	user.BlockedUntil = nil
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile
func Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}
