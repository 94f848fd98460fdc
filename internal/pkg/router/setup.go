package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/PayBridge/app/controllers"
	"github.com/ManuelReschke/PayBridge/internal/pkg/config"
	"github.com/ManuelReschke/PayBridge/internal/pkg/metrics/counter"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are created once in main and shared by all routers.
type Dependencies struct {
	Config    *config.Config
	Forwarder controllers.PaymentForwarder
	Counters  counter.Store
	Cache     *redis.Client // nil without cache
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	if deps.Counters == nil {
		deps.Counters = counter.Noop{}
	}
	setup(app, NewHttpRouter(deps), NewApiRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
