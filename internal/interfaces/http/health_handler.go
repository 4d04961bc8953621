package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type schedulerStatus interface {
	IsRunning() bool
	NextRun() time.Time
}

// HealthHandler estado del proceso, de la base y del scheduler.
type HealthHandler struct {
	db        pinger
	scheduler schedulerStatus
}

func NewHealthHandler(db pinger, scheduler schedulerStatus) *HealthHandler {
	return &HealthHandler{db: db, scheduler: scheduler}
}

// Check godoc
// @Summary      Estado del servicio
// @Description  503 si la base no responde.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	body := fiber.Map{"status": "ok"}
	status := fiber.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			body["status"] = "degraded"
			body["database"] = "unavailable"
			status = fiber.StatusServiceUnavailable
		} else {
			body["database"] = "ok"
		}
	}
	if h.scheduler != nil {
		sched := fiber.Map{"running": h.scheduler.IsRunning()}
		if next := h.scheduler.NextRun(); !next.IsZero() {
			sched["next_run"] = next
		}
		body["scheduler"] = sched
	}
	return c.Status(status).JSON(body)
}
