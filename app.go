package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"okultedarik/internal/config"
	"okultedarik/internal/handlers"
	"okultedarik/internal/middleware"
	"okultedarik/internal/repositories"
	"okultedarik/internal/services"
	"okultedarik/pkg/rabbitmq"
	"okultedarik/pkg/redispub"
)

// application owns every long-lived resource of the process.
type application struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	http    *fiber.App
	auth    *services.AuthService
	mq      *rabbitmq.Client
	closers []func() error
}

// newApp opens the database, connects the optional brokers and wires the HTTP layer.
// Broker connection failures are logged and the broker is skipped.
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*application, error) {
	db, err := repositories.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		return nil, err
	}

	a := &application{cfg: cfg, log: log, db: db}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}

	var publishers services.MultiPublisher
	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
			Queue:    cfg.RabbitMQ.Queue,
		}, log)
		if err != nil {
			log.Warn("rabbitmq unavailable, order events will not be sent over AMQP", zap.Error(err))
		} else {
			a.mq = mq
			publishers = append(publishers, mq)
			a.closers = append(a.closers, mq.Close)
		}
	}
	if cfg.Redis.Addr != "" {
		rp, err := redispub.NewPublisher(ctx, redispub.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			log.Warn("redis unavailable, order events will not be broadcast", zap.Error(err))
		} else {
			publishers = append(publishers, rp)
			a.closers = append(a.closers, rp.Close)
		}
	}
	var events services.EventPublisher
	if len(publishers) > 0 {
		events = publishers
	}

	orderRepo := repositories.NewGORMOrderRepository(db)
	schoolRepo := repositories.NewGORMSchoolRepository(db)
	auditRepo := repositories.NewGORMAuditRepository(db)
	tx := repositories.NewGORMTransactor(db)
	audit := services.NewAuditTrail(auditRepo, log)

	orderService := services.NewOrderService(orderRepo, tx, audit, events, log)
	svc := handlers.Services{
		Auth:     services.NewAuthService(repositories.NewGORMUserRepository(db), schoolRepo, audit, log, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Orders:   orderService,
		Cancels:  services.NewCancellationService(repositories.NewGORMCancelRequestRepository(db), orderRepo, orderService, tx, audit, log),
		Reports:  services.NewReportService(orderRepo, cfg.Location()),
		Payments: services.NewPaymentService(repositories.NewGORMPaymentRepository(db), audit, log),
		Catalog:  services.NewCatalogService(schoolRepo, repositories.NewGORMClassRepository(db), repositories.NewGORMPackageRepository(db), audit, log),
		Audit:    services.NewAuditService(auditRepo),
	}
	a.auth = svc.Auth

	limiter := middleware.NewIPRateLimiter(cfg.Auth.LoginRateRPS, cfg.Auth.LoginRateBurst)
	a.http = handlers.NewRouter(svc, handlers.RouterOptions{
		Location:   cfg.Location(),
		Throttle:   limiter.Handler(),
		Health:     a.pingDB,
		RequestLog: cfg.App.Env == config.EnvDevelopment,
	}, log)
	return a, nil
}

func (a *application) pingDB(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// bootstrap creates the configured admin account on an empty installation and starts
// the event consumer.
func (a *application) bootstrap(ctx context.Context) error {
	created, err := a.auth.EnsureAdmin(ctx, a.cfg.Auth.AdminUsername, a.cfg.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		a.log.Info("created bootstrap admin account", zap.String("username", a.cfg.Auth.AdminUsername))
	}
	if a.mq != nil {
		if err := a.mq.ConsumeOrderEvents(notifyParent(a.log)); err != nil {
			a.log.Warn("failed to start order event consumer", zap.Error(err))
		}
	}
	return nil
}

// close releases resources in reverse order of acquisition.
func (a *application) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// notifyParent handles status change events. Delivery to parents goes through the log
// until an SMS gateway is wired in.
func notifyParent(log *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var ev services.StatusChangedEvent
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			return fmt.Errorf("decode status event: %w", err)
		}
		log.Info("parent notification",
			zap.String("order_number", ev.OrderNumber),
			zap.String("status", string(ev.ToStatus)),
			zap.String("label", ev.ToStatus.Label()),
		)
		return nil
	}
}
