package main // Entry point package

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/meeting-room-booking/internal/config"
	"github.com/iliyamo/meeting-room-booking/internal/database"
	"github.com/iliyamo/meeting-room-booking/internal/handler"
	"github.com/iliyamo/meeting-room-booking/internal/middleware"
	"github.com/iliyamo/meeting-room-booking/internal/queue"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
	"github.com/iliyamo/meeting-room-booking/internal/router"
	"github.com/iliyamo/meeting-room-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()

	log, err := config.NewLogger(cfg.Env)
	if err != nil {
		stdlog.Fatalf("init logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBDriver, cfg.DBURL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer db.Close()

	if cfg.DBMigrate {
		mctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := database.Migrate(mctx, db, cfg.DBDriver)
		cancel()
		if err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	policy, err := config.LoadBookingPolicy()
	if err != nil {
		log.Fatal("Invalid booking policy", zap.Error(err))
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("Redis unreachable, rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()

	var notifiers service.MultiNotifier
	if rdb != nil && cacheCfg.Enabled {
		notifiers = append(notifiers, middleware.NewCachePurger(rdb, cacheCfg.Prefix))
	}
	if cfg.QueueEnabled {
		notifiers = append(notifiers, queue.NewPublisher(cfg.AMQPURL, log.Named("publisher")))
	}
	if cfg.ConsumerEnabled {
		go func() {
			err := queue.StartBookingConsumer(ctx, cfg.AMQPURL, cfg.BookingLogDir, log.Named("consumer"))
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Booking consumer stopped", zap.Error(err))
			}
		}()
	}

	repo := repository.NewBookingRepo(db, cfg.DBDriver)
	svc := service.NewBookingService(repo, policy, notifiers, log.Named("booking"))
	svc.SetLocation(cfg.Location)
	gate := service.NewAdminGate(cfg.Admin(), log.Named("admin"))
	if cfg.AdminPasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH is empty, admin login disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log.Named("http")))

	router.RegisterRoutes(e, db)
	router.RegisterPublic(e,
		handler.NewBookingHandler(svc),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(cacheCfg, rdb),
	)
	router.RegisterAdmin(e,
		handler.NewAdminHandler(gate, svc, cfg.JWTSecret, cfg.AdminSessionTTL, cfg.Env == "prod"),
		cfg.JWTSecret,
	)

	addr := ":" + cfg.Port
	go func() {
		log.Info("Listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("db", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
