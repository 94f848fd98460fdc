package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ManuelReschke/PayBridge/internal/pkg/cache"
	"github.com/ManuelReschke/PayBridge/internal/pkg/config"
	"github.com/ManuelReschke/PayBridge/internal/pkg/env"
	"github.com/ManuelReschke/PayBridge/internal/pkg/firebase"
	"github.com/ManuelReschke/PayBridge/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/PayBridge/internal/pkg/router"
)

func main() {
	env.SetupEnvFile()
	if env.IsDev() {
		log.SetLevel(log.LevelDebug)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app, dispatcher := NewApplication(cfg)

	go func() {
		log.Infof("Webhook middleware listening at http://%s", cfg.ListenAddr())
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Errorf("HTTP shutdown: %v", err)
	}
	if err := dispatcher.Wait(ctx); err != nil {
		log.Warnf("Forwards still in flight at shutdown: %v", err)
	}
}

func NewApplication(cfg *config.Config) (*fiber.App, *firebase.Dispatcher) {
	redisClient := cache.SetupCache(cfg.Cache)
	counters := counter.New(redisClient)

	dispatcher := firebase.NewDispatcher(
		firebase.NewClient(cfg.Firebase.DatabaseURL, cfg.Firebase.AuthToken, cfg.Firebase.ForwardTimeout),
		cfg.Firebase.ForwardTimeout,
		counters,
	)

	app := fiber.New(fiber.Config{
		AppName:      "PayBridge",
		ErrorHandler: router.ErrorHandler,
		BodyLimit:    1 << 20, // Razorpay payloads are a few KiB
	})

	// recovery and logging
	app.Use(recover.New(), requestid.New(), logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// SWAGGER / OPENAPI
	if docs := findOpenAPIFile(); docs != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/docs/api/",
			FilePath: docs,
			Path:     "v1",
		}))
	} else {
		log.Warn("OpenAPI document not found, /docs/api/v1 disabled")
	}

	// ROUTER
	router.InstallRouter(app, router.Dependencies{
		Config:    cfg,
		Forwarder: dispatcher,
		Counters:  counters,
		Cache:     redisClient,
	})

	return app, dispatcher
}

func findOpenAPIFile() string {
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/paybridge to project root
		"../../../", // Fallback
	}
	for _, path := range basePaths {
		candidate := path + "public/docs/v1/openapi.yml"
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
