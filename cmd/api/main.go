package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/termpro2000/fdapp/internal/application/auth"
	"github.com/termpro2000/fdapp/internal/application/export"
	"github.com/termpro2000/fdapp/internal/application/shipping"
	"github.com/termpro2000/fdapp/internal/application/usecase"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
	infraexcel "github.com/termpro2000/fdapp/internal/infrastructure/excel"
	infrapdf "github.com/termpro2000/fdapp/internal/infrastructure/pdf"
	"github.com/termpro2000/fdapp/internal/infrastructure/postgres"
	httpRouter "github.com/termpro2000/fdapp/internal/interfaces/http"
	"github.com/termpro2000/fdapp/pkg/config"
	"github.com/termpro2000/fdapp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("database migrations")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	seedAdmin(userRepo, log)

	activityUC := usecase.NewActivityUseCase(activityRepo, log)
	userUC := usecase.NewUserUseCase(userRepo, activityUC)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	waybillGenerator := infrapdf.NewMarotoWaybillGenerator()
	shippingUC := shipping.NewShippingUseCase(orderRepo, activityUC, waybillGenerator)
	exportUC := export.NewExportUseCase(statsRepo, map[string]export.Renderer{
		"xlsx": infraexcel.NewXLSXRenderer(),
		"csv":  infraexcel.NewCSVRenderer(),
	}, activityUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute,
	}))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Shipping API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ShippingUC: shippingUC,
		UserUC:     userUC,
		ActivityUC: activityUC,
		ExportUC:   exportUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// seedAdmin inserts the bootstrap admin account (admin / admin123) when no
// such user exists yet. Change the password right after the first login.
func seedAdmin(userRepo repository.UserRepository, log *logger.Logger) {
	existing, err := userRepo.GetByUsername("admin")
	if err != nil {
		log.Warn().Err(err).Msg("admin seed lookup")
		return
	}
	if existing != nil {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Warn().Err(err).Msg("admin seed hash")
		return
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		PasswordHash: string(hash),
		Name:         "관리자",
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("admin seed insert")
		return
	}
	log.Info().Str("username", admin.Username).Msg("bootstrap admin account created")
}
