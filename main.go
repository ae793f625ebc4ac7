package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	requestlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/config"
	"katalog/pkg/logger"
	"katalog/pkg/rabbitmq"
	"katalog/web"
)

func main() {
	cfg := config.Load()
	lg := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	// --- Storage ---
	productRepo, err := newProductRepository(cfg.DB)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to initialize storage")
	}

	if cfg.App.SeedData {
		seedProducts(productRepo, lg)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.MQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.MQ.URL})
		if err != nil {
			lg.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
	}

	// --- Services and handlers ---
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	productService := services.NewProductService(productRepo, publisher)
	productHandler := handlers.NewProductHandler(productService, lg)

	app := newApp(cfg.App, lg)
	productHandler.RegisterRoutes(app)

	// Any unmatched route gets the generic error page.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	// --- Event consumer ---
	if mqClient != nil {
		if consumerErr := mqClient.ConsumeProductEvents(func(msg amqp.Delivery) error {
			lg.Info().Uint64("tag", msg.DeliveryTag).RawJSON("event", msg.Body).Msg("received product event")
			return nil
		}); consumerErr != nil {
			lg.Error().Err(consumerErr).Msg("failed to start RabbitMQ consumer")
		}
	}

	// --- Start HTTP server ---
	lg.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.App.Port); err != nil {
			lg.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	lg.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		lg.Error().Err(err).Msg("error during shutdown")
	}
	lg.Info().Msg("server gracefully stopped")
}

// newApp builds the Fiber app: embedded views and static assets, request
// logging, panic recovery and the method-override rewrite.
func newApp(appCfg config.AppConfig, lg *logger.Logger) *fiber.App {
	engine := html.NewFileSystem(http.FS(web.TemplatesFS()), ".html")
	engine.AddFunc("year", func() int { return time.Now().Year() })
	engine.AddFunc("money", func(d decimal.Decimal) string { return d.StringFixed(2) })
	engine.AddFunc("formatTime", func(t time.Time) string { return t.Format("1/2/2006, 3:04:05 PM") })

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: newErrorHandler(appCfg, lg),
	})

	app.Use(requestlogger.New())
	app.Use(recover.New())
	app.Use(middleware.MethodOverride())

	staticFS := http.FS(web.StaticFS())
	app.Use("/css", filesystem.New(filesystem.Config{Root: staticFS, PathPrefix: "css", MaxAge: 3600}))
	app.Use("/js", filesystem.New(filesystem.Config{Root: staticFS, PathPrefix: "js", MaxAge: 3600}))

	return app
}

// newErrorHandler renders every failure on the shared error page. Validation
// failures never reach here; they re-render their form. Status comes from the
// *fiber.Error, defaulting to 500, and a stack trace is included only in
// development.
func newErrorHandler(appCfg config.AppConfig, lg *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		var stack string
		if code >= fiber.StatusInternalServerError {
			lg.Error().Err(err).Int("status", code).Str("path", c.Path()).Msg("request failed")
			if appCfg.IsDevelopment() {
				stack = string(debug.Stack())
			}
		}

		if renderErr := c.Status(code).Render("error", fiber.Map{
			"Title":   "Error",
			"Status":  code,
			"Message": err.Error(),
			"Stack":   stack,
		}); renderErr != nil {
			return c.SendString(err.Error())
		}
		return nil
	}
}

// newProductRepository opens the store selected by DB_DRIVER and migrates the
// schema.
func newProductRepository(dbCfg config.DBConfig) (repositories.ProductRepository, error) {
	if dbCfg.Driver == "memory" {
		return repositories.NewMemoryProductRepository(), nil
	}

	var dialector gorm.Dialector
	switch dbCfg.Driver {
	case "postgres":
		dialector = postgres.Open(dbCfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(dbCfg.DSN)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", dbCfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repositories.NewGORMProductRepository(db), nil
}

// seedProducts inserts sample data when the catalog is empty.
func seedProducts(repo repositories.ProductRepository, lg *logger.Logger) {
	existing, err := repo.GetAll()
	if err != nil {
		lg.Error().Err(err).Msg("failed to check for existing products")
		return
	}
	if len(existing) > 0 {
		return
	}

	products := []models.Product{
		{
			Name:        "Laptop",
			Description: "High-performance laptop with Intel Core i7, 16GB RAM, and 512GB SSD",
			Price:       decimal.NewFromFloat(1299.99),
			Stock:       15,
			ImageURL:    "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?q=80&w=2071&auto=format&fit=crop",
		},
		{
			Name:        "Smartphone",
			Description: "Latest model with 6.7-inch OLED display, 128GB storage, and dual camera",
			Price:       decimal.NewFromFloat(899.99),
			Stock:       25,
			ImageURL:    "https://images.unsplash.com/photo-1598327105666-5b89351aff97?q=80&w=2127&auto=format&fit=crop",
		},
		{
			Name:        "Wireless Headphones",
			Description: "Noise-canceling headphones with 30-hour battery life",
			Price:       decimal.NewFromFloat(199.99),
			Stock:       40,
			ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?q=80&w=2070&auto=format&fit=crop",
		},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			lg.Error().Err(err).Str("name", products[i].Name).Msg("failed to seed product")
		} else {
			lg.Info().Str("name", products[i].Name).Uint("id", products[i].ID).Msg("seeded product")
		}
	}
}
