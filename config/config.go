package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int
	TokenTTL  int // access token lifetime in minutes

	CoursePriceCents int64  // price of the full course in cents
	CourseCurrency   string // ISO currency code for checkout

	StripeSecretKey string
	StripeApiURL    string
	FrontendURL     string // base URL for checkout success/cancel redirects

	SendGridApiKey  string
	EmailSender     string
	EmailSenderName string

	OpenAiApiKey string
	OpenAiApiURL string
	OpenAiModel  string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),
		TokenTTL:  getEnvInt("TOKEN_TTL_MINUTES", 30),

		CoursePriceCents: int64(getEnvInt("COURSE_PRICE_CENTS", 19900)),
		CourseCurrency:   getEnv("COURSE_CURRENCY", "eur"),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		StripeApiURL:    getEnv("STRIPE_API_URL", "https://api.stripe.com/v1"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),

		SendGridApiKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", "contact@inspecteur-auto.fr"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "Inspecteur Auto"),

		OpenAiApiKey: getEnv("OPENAI_API_KEY", ""),
		OpenAiApiURL: getEnv("OPENAI_API_URL", "https://api.openai.com/v1"),
		OpenAiModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set. Checkout will be disabled.")
	}
	if AppConfig.SendGridApiKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Emails will not be sent.")
	}
	if AppConfig.OpenAiApiKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set. Chatbot will reply with a fallback message.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
