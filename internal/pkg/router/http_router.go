package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"github.com/ManuelReschke/PayBridge/app/controllers"
)

type HttpRouter struct {
	deps Dependencies
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/healthz", controllers.HandleHealthz)

	// Payment provider webhook (signature-verified in controller)
	webhook := controllers.NewWebhookController(h.deps.Config.WebhookSecret, h.deps.Forwarder, h.deps.Counters)
	app.Post("/webhook", webhook.HandleRazorpayWebhook)

	if h.deps.Config.Metrics.Enabled() {
		app.Get("/metrics", metricsAuth(h.deps), monitor.New())
	}
}

func NewHttpRouter(deps Dependencies) *HttpRouter {
	return &HttpRouter{deps: deps}
}

func metricsAuth(deps Dependencies) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Users: map[string]string{
			deps.Config.Metrics.User: deps.Config.Metrics.Password,
		},
	})
}
