package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	zlog "github.com/rs/zerolog/log"

	"github.com/dineflow/table-service/internal/application/booking"
	"github.com/dineflow/table-service/internal/config"
	rediscache "github.com/dineflow/table-service/internal/infrastructure/caching/redis"
	"github.com/dineflow/table-service/internal/infrastructure/db/postgres"
	rabbitpub "github.com/dineflow/table-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/dineflow/table-service/internal/logger"
	"github.com/dineflow/table-service/internal/transport/http/handlers"
	authmw "github.com/dineflow/table-service/internal/transport/http/middleware"
	"github.com/dineflow/table-service/internal/transport/http/router"
)

// sysClock implements booking.Clock using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *pgxpool.Pool

	Cache     *rediscache.Client
	Publisher *rabbitpub.Publisher
	Service   *booking.Service
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	pool, err := postgres.NewPool(rootCtx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()
	zlog.Info().Msg("postgres connected")

	app := NewApp(cfg, pool)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
		if app.Cache != nil {
			_ = app.Cache.Close()
		}
	}()

	// Background sweep moves overdue waitlist entries to expired.
	app.Service.StartExpiryWorker(rootCtx, cfg.WaitlistSweepEvery)

	go func() {
		<-rootCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Server.Shutdown(shutdownCtx)
	}()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}

func NewApp(cfg *config.Config, pool *pgxpool.Pool) *App {
	// 1) Infrastructure
	tables := postgres.NewTables(pool)
	reservations := postgres.NewReservations(pool)
	maintenance := postgres.NewMaintenance(pool)
	waitlist := postgres.NewWaitlist(pool)
	customers := postgres.NewCustomers(pool)

	var cache *rediscache.Client
	var svcCache booking.Cache
	if cfg.RedisURL != "" {
		c, err := rediscache.New(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable: availability cache disabled")
		} else {
			cache = c
			svcCache = c
			zlog.Info().Msg("redis connected")
		}
	}

	var rabbit *rabbitpub.Publisher
	var notify booking.Notifier
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		rabbit = p
		notify = rabbitpub.NewNotifier(p)
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: booking events will not be published")
	}

	// 2) Application
	svc := booking.New(tables, reservations, maintenance, waitlist, customers, svcCache, notify, sysClock{}, booking.Options{
		MaxAlternatives:      cfg.MaxAlternatives,
		MaxCombinations:      cfg.MaxCombinations,
		SuggestWindowMinutes: cfg.SuggestWindowMinutes,
		SuggestStepMinutes:   cfg.SuggestStepMinutes,
		WaitlistTTL:          cfg.WaitlistTTL,
		AvailabilityTTL:      cfg.CacheTTLAvailability,
	})

	// 3) Transport
	h := handlers.NewBookingHandler(svc)
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)
	z := handlers.NewHealthHandler()

	// 4) Router
	httpHandler := router.New(h, auth, z, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:    cfg,
		Server:    srv,
		DB:        pool,
		Cache:     cache,
		Publisher: rabbit,
		Service:   svc,
	}
}
