// Package app wires configuration, storage, services and HTTP routes together.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"katalog/internal/auth"
	"katalog/internal/config"
	"katalog/internal/database"
	"katalog/internal/events"
	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/repositories"
	"katalog/internal/seed"
	"katalog/internal/services"
	"katalog/internal/validation"
	"katalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// App is a fully wired API server.
type App struct {
	Fiber *fiber.App
	Auth  *services.AuthService

	cfg config.Config
	db  *gorm.DB
	mq  *rabbitmq.Client
}

type storage struct {
	categories repositories.CategoryRepository
	products   repositories.ProductRepository
	users      repositories.UserRepository
}

// New builds the App described by cfg: it opens the store, connects the change
// notifier, bootstraps the admin account, seeds demo data and registers the routes.
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg}

	store, err := a.openStorage()
	if err != nil {
		return nil, err
	}

	var notifier *events.Notifier
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.mq = mq
		notifier = events.NewNotifier(mq)
	} else {
		log.Println("RABBITMQ_URL not set, change notifications disabled")
	}

	a.Auth = services.NewAuthService(store.users, cfg.JWTSecret, cfg.JWTTTL)
	categoryService := services.NewCategoryService(store.categories, notifier)
	productService := services.NewProductService(store.products, store.categories, notifier)

	ctx := context.Background()
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if _, err := a.Auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
		}
	}
	if cfg.SeedDemoData {
		if _, err := seed.Demo(ctx, store.categories, store.products); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	validate := validation.New()
	a.Fiber = fiber.New(fiber.Config{
		AppName:      "katalog",
		ErrorHandler: handlers.ErrorHandler,
	})
	a.Fiber.Use(recover.New())
	a.Fiber.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if cfg.Env != "test" {
		a.Fiber.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	a.Fiber.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := a.Fiber.Group("/api", middleware.Authenticate(a.Auth))
	admin := middleware.Guard(a.Auth, auth.CapabilityAdmin)
	handlers.NewAuthHandler(a.Auth, validate).RegisterRoutes(api, middleware.Guard(a.Auth, auth.CapabilityAuthenticated))
	handlers.NewCategoryHandler(categoryService, validate).RegisterRoutes(api, admin)
	handlers.NewProductHandler(productService, validate).RegisterRoutes(api, admin)

	return a, nil
}

func (a *App) openStorage() (storage, error) {
	if a.cfg.DatabaseDriver == config.DriverMemory {
		log.Println("Using in-memory storage")
		mem := repositories.NewMemoryStore()
		return storage{
			categories: mem.Categories(),
			products:   mem.Products(),
			users:      mem.Users(),
		}, nil
	}

	db, err := database.Open(a.cfg)
	if err != nil {
		return storage{}, err
	}
	a.db = db
	log.Printf("Connected to %s database", a.cfg.DatabaseDriver)
	return storage{
		categories: repositories.NewGORMCategoryRepository(db),
		products:   repositories.NewGORMProductRepository(db),
		users:      repositories.NewGORMUserRepository(db),
	}, nil
}

// Listen serves HTTP on the configured port until Shutdown is called.
func (a *App) Listen() error {
	log.Printf("Starting server on port %s", a.cfg.Port)
	return a.Fiber.Listen(a.cfg.Port)
}

// Shutdown stops the HTTP server and releases every resource.
func (a *App) Shutdown() error {
	var firstErr error
	if a.Fiber != nil {
		if err := a.Fiber.Shutdown(); err != nil {
			log.Printf("Error during Fiber shutdown: %v", err)
			firstErr = err
		}
	}
	if err := a.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Close releases the message broker connection and the database pool.
func (a *App) Close() error {
	var firstErr error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
			firstErr = err
		}
		a.mq = nil
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			log.Printf("Error closing database: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
		a.db = nil
	}
	return firstErr
}
