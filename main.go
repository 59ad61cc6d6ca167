package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/carsawa/site/api"
	"github.com/carsawa/site/browse"
	"github.com/carsawa/site/cache"
	"github.com/carsawa/site/catalog"
	"github.com/carsawa/site/config"
	"github.com/carsawa/site/db"
	h "github.com/carsawa/site/handlers"
	"github.com/carsawa/site/logger"
	"github.com/carsawa/site/redis"
)

// apiCacheBytes bounds the response cache of the remote API client.
const apiCacheBytes = 32 << 20

// newSource picks the data source named by config.DataSource.
func newSource() (h.Source, func(), error) {
	if config.DataSource == config.DataSourceLocal {
		if err := db.Init(config.DatabaseURL); err != nil {
			return nil, nil, err
		}
		return catalog.New(db.Get()), func() { _ = db.Close() }, nil
	}

	responses, err := cache.New("api", apiCacheBytes, func(b []byte) int64 { return int64(len(b)) })
	if err != nil {
		return nil, nil, err
	}
	opts := []api.Option{api.WithCache(responses, config.APICacheTTL)}
	closeAll := responses.Close
	if config.RedisAddress != "" {
		shared := redis.New(config.RedisAddress, config.RedisPassword)
		opts = append(opts, api.WithSharedCache(shared, config.RedisCacheTTL))
		closeAll = func() {
			responses.Close()
			_ = shared.Close()
		}
	}
	return api.New(config.APIBaseURL, config.APITimeout, opts...), closeAll, nil
}

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}
	if err := logger.Init(config.LogLevel, config.LogFormat); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	source, closeSource, err := newSource()
	if err != nil {
		log.Fatal("error initializing data source", zap.String("source", config.DataSource), zap.Error(err))
	}
	defer closeSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := browse.NewStore(config.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	h.Init(source, sessions)

	app := fiber.New(fiber.Config{
		ErrorHandler: h.CustomErrorHandler,
		BodyLimit:    config.ServerUploadLimit,
		ReadTimeout:  30 * time.Second, // Prevent long-running requests
		WriteTimeout: 30 * time.Second, // Prevent long-running responses
	})

	app.Use(recover.New())
	app.Use(h.RateLimiter())
	app.Use(fiberlogger.New())

	// Static files and utility
	app.Static("/", "./static")
	app.Get("/.well-known/appspecific/com.chrome.devtools.json", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Get("/", h.HandleHome)

	// Car browser
	app.Get("/cars", h.SessionRequired, h.HandleCars)
	app.Get("/cars/results", h.SessionRequired, h.HandleCarResults) // htmx fragment
	app.Get("/cars/:id", h.HandleCar)
	app.Get("/used-cars", h.SessionRequired, h.HandleUsedCars)

	// Dealers
	app.Get("/dealers", h.HandleDealers)
	app.Get("/dealers/:id", h.HandleDealer)

	app.Get("/sitemap.xml", h.HandleSitemap)
	app.Get("/health", h.HandleHealth)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "We couldn't find that page.")
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("starting server",
		zap.String("port", config.ServerPort),
		zap.String("source", config.DataSource),
		zap.String("api", config.APIBaseURL))
	if err := app.Listen(":" + config.ServerPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
