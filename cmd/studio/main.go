package main

import (
	"context"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pixelcraft/studio/app/controllers"
	"github.com/pixelcraft/studio/app/repository"
	"github.com/pixelcraft/studio/internal/pkg/billing"
	"github.com/pixelcraft/studio/internal/pkg/cache"
	"github.com/pixelcraft/studio/internal/pkg/config"
	"github.com/pixelcraft/studio/internal/pkg/database"
	"github.com/pixelcraft/studio/internal/pkg/env"
	"github.com/pixelcraft/studio/internal/pkg/metrics"
	"github.com/pixelcraft/studio/internal/pkg/router"
	"github.com/pixelcraft/studio/internal/pkg/statistics"
)

func main() {
	env.SetupEnvFile()
	if env.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[Config] invalid configuration")
	}
	for _, w := range cfg.Warnings() {
		log.Warn().Msg("[Config] " + w)
	}

	app, err := NewApplication(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("[App] startup failed")
	}

	log.Info().Str("addr", cfg.Addr()).Msg("[App] listening")
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("[App] server stopped")
	}
}

func NewApplication(cfg *config.Config) (*fiber.App, error) {
	if err := database.SetupDatabase(cfg); err != nil {
		return nil, err
	}
	db := database.GetDB()
	repository.InitializeFactory(db)
	repos := repository.GetGlobalRepositories()

	cache.SetupCache(cfg)
	sessionStorage, err := cache.NewStorage(cache.SessionDB)
	if err != nil {
		return nil, err
	}
	limiterStorage, err := cache.NewStorage(cache.LimiterDB)
	if err != nil {
		return nil, err
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	reg := metrics.NewRegistry()

	products, err := billing.ParseProductTable(cfg.PolarProducts)
	if err != nil {
		return nil, err
	}
	receiver := billing.NewReceiver(billing.ReceiverConfig{
		WebhookSecret:  cfg.PolarWebhookSecret,
		Products:       products,
		StrictProducts: cfg.PolarStrictProducts,
	}, billing.NewRepository(db), metrics.NewBillingMetrics(reg), log.Logger)
	polar := billing.NewPolarClient(cfg.PolarAccessToken, cfg.PolarServer)

	controllers.InitializeControllers(controllers.Dependencies{
		Auth:       controllers.NewAuthController(repos.User, polar),
		Billing:    controllers.NewBillingController(receiver, polar, products, cfg.PublicDomain+"/dashboard?checkout_id={CHECKOUT_ID}", repos.BillingEvent),
		User:       controllers.NewUserController(repos.User, repos.Project),
		Project:    controllers.NewProjectController(repos.Project),
		UploadAuth: controllers.NewUploadAuthController(cfg.ImageKitPrivateKey, cfg.ImageKitPublicKey),
		Admin:      controllers.NewAdminController(statistics.NewService(db, cache.NewStore(cache.GetClient()))),
		Main: controllers.NewMainController(map[string]controllers.HealthCheck{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"cache": cache.Ping,
		}),
	})

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./docs/openapi.yml",
		Path:     "v1",
	}))

	// ROUTER
	router.InstallRouter(app, router.Options{
		Config:         cfg,
		SessionStorage: sessionStorage,
		LimiterStorage: limiterStorage,
		Gatherer:       reg,
	})

	return app, nil
}
