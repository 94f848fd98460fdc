package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/PayBridge/app/controllers"
)

type ApiRouter struct {
	deps Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(h.limiterConfig()))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")
	v1.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
	})
	if h.deps.Config.Metrics.Enabled() {
		v1.Get("/stats", metricsAuth(h.deps), controllers.HandleStats(h.deps.Counters))
	}
}

// Limits are shared across instances when the cache is available.
func (h ApiRouter) limiterConfig() limiter.Config {
	cfg := limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}
	if h.deps.Cache == nil {
		return cfg
	}

	cacheCfg := h.deps.Config.Cache
	cfg.Storage = redisstorage.New(redisstorage.Config{
		Host:     cacheCfg.Host,
		Port:     cacheCfg.Port,
		Password: cacheCfg.Password,
		Database: 2, // DB 0 holds the outcome counters
		Reset:    false,
	})
	log.Info("[Router] API rate limiter uses redis storage")
	return cfg
}

func NewApiRouter(deps Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
