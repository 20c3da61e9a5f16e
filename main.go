package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"store-service/handlers"
	"store-service/internal/cart"
	"store-service/internal/checkout"
	"store-service/internal/config"
	"store-service/internal/consul"
	"store-service/internal/contact"
	"store-service/internal/email"
	"store-service/internal/newsletter"
	"store-service/internal/orders"
	"store-service/internal/products"
	"store-service/internal/promo"
	"store-service/internal/stores/kafka"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v81"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	if err := run(); err != nil {
		slog.Error("service stopped", slog.String("ERROR", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// .env is a local convenience; in deployed environments the variables
	// come from the platform.
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, reading environment directly")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.ConnString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	defer redisClient.Close()

	if cfg.StripeKey == "" {
		return fmt.Errorf("STRIPE_TEST_KEY must be set")
	}
	stripe.Key = cfg.StripeKey

	productConf, err := products.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create product store: %w", err)
	}
	promoConf, err := promo.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create promo store: %w", err)
	}
	orderConf, err := orders.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create order store: %w", err)
	}
	newsConf, err := newsletter.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create newsletter store: %w", err)
	}
	contactConf, err := contact.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to create contact store: %w", err)
	}

	carts := cart.NewStore(redisClient)
	promoService := promo.NewService(&promoConf)

	orch := checkout.NewOrchestrator(&productConf, promoService, checkout.StripeGateway{}, &orderConf, checkout.Config{
		Enabled:          cfg.CheckoutEnabled,
		SuccessURL:       cfg.SuccessURL,
		CancelURL:        cfg.CancelURL,
		AllowedCountries: cfg.AllowedCountries,
	})

	var kafkaConf *kafka.Conf
	if len(cfg.KafkaBrokers) > 0 {
		kafkaConf, err = kafka.NewConf(cfg.KafkaBrokers)
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		defer kafkaConf.Close()
	} else {
		slog.Warn("no kafka brokers configured, order events disabled")
	}

	mailer := email.NewConf(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)

	if cfg.ConsulAddress != "" {
		consulClient, err := consul.NewClient(cfg.ConsulAddress)
		if err != nil {
			return fmt.Errorf("failed to connect to consul: %w", err)
		}
		host, _ := os.Hostname()
		if err := consul.RegisterService(consulClient, cfg.ServiceName, host, cfg.Port); err != nil {
			return fmt.Errorf("failed to register with consul: %w", err)
		}
	}

	h := handlers.NewHandler(cfg, carts, promoService, &promoConf, &productConf,
		&orderConf, &newsConf, &contactConf, orch, kafkaConf, mailer)

	api := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.API("/v1/store", h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("server started", slog.String("Port", cfg.Port))
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		slog.Info("shutdown started", slog.String("Signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
