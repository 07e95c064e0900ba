package routes

import (
	"github.com/gofiber/fiber/v2"

	"outreach-analytics-service/internal/controller"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, analyticsController controller.AnalyticsController) {
	app.Post("/events", analyticsController.CreateEvent)
	app.Get("/analytics", analyticsController.GetAnalytics)
	app.Get("/analytics/raw", analyticsController.GetRawEvents)
	app.Delete("/analytics/cache", analyticsController.ClearCache)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
