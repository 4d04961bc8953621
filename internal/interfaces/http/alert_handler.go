package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
)

type alertLister interface {
	ListUnread(ctx context.Context) ([]dto.AlertDTO, error)
	ListAll(ctx context.Context) ([]dto.AlertDTO, error)
	MarkRead(ctx context.Context, id string, read bool) error
}

// checkRunner ejecuta la verificación completa respetando el lock entre réplicas.
type checkRunner interface {
	RunNow(ctx context.Context) (dto.FullCheckResultDTO, bool)
}

// AlertHandler listado de alertas, flag de lectura y disparo manual de la verificación.
type AlertHandler struct {
	alerts alertLister
	runner checkRunner
}

func NewAlertHandler(alerts alertLister, runner checkRunner) *AlertHandler {
	return &AlertHandler{alerts: alerts, runner: runner}
}

// List godoc
// @Summary      Lista de alertas
// @Description  Por defecto solo las no leídas.
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Param        todas  query  bool  false  "true incluye las leídas"
// @Success      200  {array}   dto.AlertDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alertas [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var (
		out []dto.AlertDTO
		err error
	)
	if c.QueryBool("todas", false) {
		out, err = h.alerts.ListAll(c.UserContext())
	} else {
		out, err = h.alerts.ListUnread(c.UserContext())
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marca una alerta como leída o no leída
// @Tags         alertas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true   "ID de la alerta"
// @Param        body  body  dto.MarkReadRequest  false  "Sin cuerpo marca como leída"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alertas/{id}/lido [patch]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	in := dto.MarkReadRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	read := true
	if in.Read != nil {
		read = *in.Read
	}
	if err := h.alerts.MarkRead(c.UserContext(), c.Params("id"), read); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RunCheck godoc
// @Summary      Ejecuta la verificación completa de alertas (admin)
// @Description  409 si otra instancia tiene la ejecución en curso.
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FullCheckResultDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alertas/verificar [post]
func (h *AlertHandler) RunCheck(c *fiber.Ctx) error {
	res, ran := h.runner.RunNow(c.UserContext())
	if !ran {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CHECK_IN_PROGRESS", Message: "verificación en curso en otra instancia"})
	}
	return c.JSON(res)
}
