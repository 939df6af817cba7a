package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"okultedarik/internal/middleware"
	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

// Services are the collaborators the HTTP layer needs.
type Services struct {
	Auth     *services.AuthService
	Orders   *services.OrderService
	Cancels  *services.CancellationService
	Reports  *services.ReportService
	Payments *services.PaymentService
	Catalog  *services.CatalogService
	Audit    *services.AuditService
}

// RouterOptions tunes the HTTP layer.
type RouterOptions struct {
	// Location is used for date filters and export file names.
	Location *time.Location
	// Throttle guards login and parent lookups. Nil disables throttling.
	Throttle fiber.Handler
	// Health reports dependency state for /health. Nil reports healthy.
	Health func(ctx context.Context) error
	// RequestLog enables the fiber request logger.
	RequestLog bool
}

// NewRouter builds the Fiber app with every route registered.
func NewRouter(svc Services, opts RouterOptions, log *zap.Logger) *fiber.App {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	app := fiber.New(fiber.Config{
		AppName:      "okultedarik",
		ErrorHandler: errorHandler(log),
	})
	if opts.RequestLog {
		app.Use(fiberlogger.New())
	}

	app.Get("/health", healthHandler(opts.Health))

	apiV1 := app.Group("/api/v1")

	// Public routes
	NewStatusHandler().RegisterRoutes(apiV1)
	NewAuthHandler(svc.Auth, opts.Throttle, log).RegisterRoutes(apiV1)
	NewParentHandler(svc.Orders, svc.Cancels, svc.Catalog, log).RegisterRoutes(apiV1, opts.Throttle)

	orders := NewOrderHandler(svc.Orders, svc.Reports, opts.Location, log)
	payments := NewPaymentHandler(svc.Payments, log)
	catalog := NewCatalogHandler(svc.Catalog, log)

	authRequired := middleware.AuthRequired(svc.Auth, log)

	admin := apiV1.Group("/admin", authRequired, middleware.RequireType(models.ActorAdmin))
	orders.RegisterAdminRoutes(admin)
	NewCancelRequestHandler(svc.Cancels, log).RegisterAdminRoutes(admin)
	payments.RegisterAdminRoutes(admin)
	catalog.RegisterAdminRoutes(admin)
	NewAuthHandler(svc.Auth, nil, log).RegisterAdminRoutes(admin)
	NewAuditHandler(svc.Audit, log).RegisterAdminRoutes(admin)

	mudur := apiV1.Group("/mudur", authRequired, middleware.RequireType(models.ActorMudur))
	orders.RegisterMudurRoutes(mudur)
	payments.RegisterMudurRoutes(mudur)
	catalog.RegisterMudurRoutes(mudur)

	return app
}

func healthHandler(check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "connected",
		}
		if check != nil {
			if err := check(c.UserContext()); err != nil {
				body["status"] = "unhealthy"
				body["database"] = err.Error()
				return c.Status(fiber.StatusServiceUnavailable).JSON(body)
			}
		}
		return c.JSON(body)
	}
}

// errorHandler renders routing errors and panics recovered by fiber in the API's body shape.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		if code == fiber.StatusInternalServerError {
			log.Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
}
