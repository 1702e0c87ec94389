package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hotel-booking-api/auth"
	"hotel-booking-api/config"
	"hotel-booking-api/controllers"
	"hotel-booking-api/events"
	"hotel-booking-api/logger"
	"hotel-booking-api/middleware"
	"hotel-booking-api/routes"
	"hotel-booking-api/services"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	if envErr != nil {
		zlog.Info(".env not loaded; using process environment", zap.Error(envErr))
	}

	db, err := config.ConnectDatabase(cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	zlog.Info("database connected and migrated")

	verifier, issuer, err := buildAuth(cfg.Auth)
	if err != nil {
		zlog.Fatal("auth setup failed", zap.Error(err))
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.BookingEventsQueue, zlog)
		if err != nil {
			zlog.Warn("rabbitmq unavailable; booking events disabled", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer func() { _ = publisher.Close() }()

	var limiter middleware.Limiter = middleware.NewLocalLimiter(cfg.RateLimitPerMinute)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zlog.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			zlog.Warn("redis ping failed; falling back to in-process rate limiting", zap.Error(err))
		} else {
			limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMinute)
		}
		cancel()
	}

	roomService := services.NewRoomService(db, zlog)
	roomTypeService := services.NewRoomTypeService(db, cfg.DeletePolicy, zlog)
	inventoryService := services.NewInventoryService(db, zlog)
	bookingService := services.NewBookingService(db, publisher, zlog)
	ticketService := services.NewTicketService(db)
	customerService := services.NewCustomerService(db, issuer, bcrypt.DefaultCost)

	if cfg.SeedDatabase {
		if err := config.SeedDatabase(context.Background(), db, inventoryService, customerService,
			cfg.SeedYear, cfg.SeedDemoPassword, zlog); err != nil {
			zlog.Fatal("seeding failed", zap.Error(err))
		}
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(routes.Controllers{
		Rooms:     controllers.NewRoomController(roomService, inventoryService),
		RoomTypes: controllers.NewRoomTypeController(roomTypeService),
		Bookings:  controllers.NewBookingController(bookingService),
		Tickets:   controllers.NewTicketController(ticketService),
		Customers: controllers.NewCustomerController(customerService, bookingService),
		Auth:      controllers.NewAuthController(customerService),
	}, routes.Options{
		CORSOrigins:  cfg.CORSOrigins,
		Verifier:     verifier,
		Limiter:      limiter,
		LoginEnabled: issuer != nil,
		Log:          zlog,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("addr", addr), zap.String("auth_mode", cfg.Auth.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zlog.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
		return
	}
	zlog.Info("server stopped gracefully")
}

// buildAuth picks the token verifier for the configured mode. The issuer is
// nil in external mode, which disables local login.
func buildAuth(cfg config.AuthConfig) (auth.TokenVerifier, *auth.Issuer, error) {
	if cfg.Mode == config.AuthModeExternal {
		v, err := auth.NewExternalVerifier(cfg.ExternalPublicKey, cfg.ExternalIssuer, cfg.ExternalAudience)
		if err != nil {
			return nil, nil, err
		}
		return v, nil, nil
	}
	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewLocalVerifier(cfg.JWTSecret, cfg.JWTIssuer), issuer, nil
}
