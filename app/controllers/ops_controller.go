package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PayBridge/internal/pkg/metrics/counter"
)

func HandleHealthz(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("ok")
}

// HandleStats returns the webhook outcome counters.
func HandleStats(store counter.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		snap, err := store.Snapshot(ctx)
		if err != nil {
			log.Errorf("[Stats] Failed to read counters: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "stats_unavailable"})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"outcomes": snap})
	}
}
