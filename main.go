package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shopx/internal/config"
	"shopx/internal/handlers"
	"shopx/internal/middleware"
	"shopx/internal/models"
	"shopx/internal/repositories"
	"shopx/internal/services"
	"shopx/pkg/mailer"
	"shopx/pkg/password"
	"shopx/pkg/rabbitmq"
	"shopx/pkg/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.PasswordReset{},
		&models.Order{},
		&models.OrderItem{},
		&models.Subject{},
		&models.Contact{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close()

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	resetRepo := repositories.NewGORMPasswordResetRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	// --- Services ---
	hasher := password.NewHasher()
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	outbox := mailer.NewOutboxMailer(mqClient)

	authService := services.NewAuthService(userRepo, resetRepo, hasher, tokens, outbox)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(productRepo, cfg.ShippingFee)
	orderService := services.NewOrderService(orderRepo, productRepo, mqClient, cfg.ShippingFee)
	userService := services.NewUserService(userRepo)
	contactService := services.NewContactService(contactRepo, outbox)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	userHandler := handlers.NewUserHandler(userService)
	contactHandler := handlers.NewContactHandler(contactService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	contactHandler.RegisterRoutes(apiV1)

	// Routes requiring a valid token
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	productHandler.RegisterProtectedRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	userHandler.RegisterRoutes(protected)
	contactHandler.RegisterProtectedRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// --- Order event consumer ---
	// Logs order lifecycle events; a fulfilment worker would hook in here.
	err = mqClient.Consume(rabbitmq.OrderQueue, func(msg amqp.Delivery) error {
		log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
		return nil
	})
	if err != nil {
		log.Printf("Failed to start order event consumer: %v", err)
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
