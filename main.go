package main

import (
	"inspecteur/config"
	"inspecteur/database"
	adminRoutes "inspecteur/routers/adminRoutes"
	authRoutes "inspecteur/routers/authRoutes"
	chatRoutes "inspecteur/routers/chatRoutes"
	courseRoutes "inspecteur/routers/courseRoutes"
	messageRoutes "inspecteur/routers/messageRoutes"
	paymentRoutes "inspecteur/routers/paymentRoutes"
	certificateService "inspecteur/services/certificate"
	chatService "inspecteur/services/chat"
	emailService "inspecteur/services/email"
	paymentService "inspecteur/services/payment"
	"inspecteur/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	cfg := config.AppConfig

	// External services are constructed once and injected into the routes.
	// A missing key yields a disabled variant, never a crash.
	emailSvc := emailService.NewService(cfg.SendGridApiKey, cfg.EmailSender, cfg.EmailSenderName)
	paymentSvc := paymentService.NewService(cfg.StripeSecretKey, cfg.StripeApiURL, cfg.FrontendURL, cfg.CoursePriceCents, cfg.CourseCurrency)
	chatSvc := chatService.NewService(cfg.OpenAiApiKey, cfg.OpenAiApiURL, cfg.OpenAiModel)
	certSvc := certificateService.NewService()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app, emailSvc)
	courseRoutes.SetupCourseRoutes(app, certSvc, emailSvc)
	paymentRoutes.SetupPaymentRoutes(app, paymentSvc, emailSvc)
	chatRoutes.SetupChatRoutes(app, chatSvc)
	messageRoutes.SetupMessageRoutes(app)
	adminRoutes.SetupAdminRoutes(app, emailSvc)

	utils.InitializePaymentReconciler(paymentSvc, emailSvc)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
