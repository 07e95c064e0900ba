package controller

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"outreach-analytics-service/internal/model"
	"outreach-analytics-service/internal/service"
)

// AnalyticsEngine is the slice of the engine the controller needs.
type AnalyticsEngine interface {
	Calculate(ctx context.Context, opts model.AnalyticsOptions) model.AnalyticsResult
	RawData(ctx context.Context, startMs, endMs int64) []model.Event
	ClearCache()
}

// AnalyticsController exposes HTTP handlers for ingestion and analytics.
type AnalyticsController interface {
	CreateEvent(c *fiber.Ctx) error
	GetAnalytics(c *fiber.Ctx) error
	GetRawEvents(c *fiber.Ctx) error
	ClearCache(c *fiber.Ctx) error
}

type analyticsController struct {
	eventService service.EventService
	engine       AnalyticsEngine
}

// NewAnalyticsController builds an AnalyticsController.
func NewAnalyticsController(svc service.EventService, engine AnalyticsEngine) AnalyticsController {
	return &analyticsController{eventService: svc, engine: engine}
}

// CreateEvent accepts single event payloads.
func (h *analyticsController) CreateEvent(c *fiber.Ctx) error {
	var req model.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	event, err := h.eventService.BuildEvent(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result := h.eventService.ProcessEvent(c.Context(), event)

	return c.Status(fiber.StatusAccepted).JSON(result)
}

// GetAnalytics returns the full assembled analytics result. Invalid
// option values degrade to engine defaults instead of failing.
func (h *analyticsController) GetAnalytics(c *fiber.Ctx) error {
	opts, err := buildAnalyticsOptions(c)
	if err != nil {
		return err
	}
	return c.JSON(h.engine.Calculate(c.Context(), opts))
}

// GetRawEvents exposes the lower-level accessor for a time window.
func (h *analyticsController) GetRawEvents(c *fiber.Ctx) error {
	start, err := queryInt64(c, "start")
	if err != nil {
		return err
	}
	end, err := queryInt64(c, "end")
	if err != nil {
		return err
	}
	events := h.engine.RawData(c.Context(), start, end)
	return c.JSON(fiber.Map{"events": events, "count": len(events)})
}

// ClearCache empties the engine's memo cache.
func (h *analyticsController) ClearCache(c *fiber.Ctx) error {
	h.engine.ClearCache()
	return c.SendStatus(fiber.StatusNoContent)
}

func buildAnalyticsOptions(c *fiber.Ctx) (model.AnalyticsOptions, error) {
	start, err := queryInt64(c, "start")
	if err != nil {
		return model.AnalyticsOptions{}, err
	}
	end, err := queryInt64(c, "end")
	if err != nil {
		return model.AnalyticsOptions{}, err
	}

	return model.AnalyticsOptions{
		StartDate:       start,
		EndDate:         end,
		GroupBy:         utils.Trim(c.Query("group_by", model.GroupByDay), ' '),
		IncludeRealTime: c.QueryBool("real_time", false),
	}, nil
}

func queryInt64(c *fiber.Ctx, name string) (int64, error) {
	raw := utils.Trim(c.Query(name), ' ')
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name+" timestamp")
	}
	return v, nil
}
