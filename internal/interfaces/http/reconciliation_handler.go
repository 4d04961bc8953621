package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
)

type reconciler interface {
	GetReconciliationItems(ctx context.Context, companyID int64, from, to time.Time) ([]dto.ReconciliationItemDTO, error)
	GetSummary(ctx context.Context, companyID int64, from, to time.Time) (*dto.ReconciliationSummaryDTO, error)
	MarkReconciled(ctx context.Context, itemID string) (bool, error)
}

const dateLayout = "2006-01-02"

// ReconciliationHandler conciliación bancaria por empresa.
type ReconciliationHandler struct {
	uc  reconciler
	loc *time.Location
	now func() time.Time
}

// NewReconciliationHandler construye el handler. loc define el mes por defecto y el parseo de fechas.
func NewReconciliationHandler(uc reconciler, loc *time.Location) *ReconciliationHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReconciliationHandler{uc: uc, loc: loc, now: time.Now}
}

// window lee :empresaId, ?inicio y ?fim. Sin fechas se usa el mes corriente.
func (h *ReconciliationHandler) window(c *fiber.Ctx) (int64, time.Time, time.Time, error) {
	id, err := strconv.ParseInt(c.Params("empresaId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, time.Time{}, time.Time{}, invalidRequest("INVALID_ID", "empresaId inválido")
	}
	var q dto.ReconciliationQuery
	if err := c.QueryParser(&q); err != nil {
		return 0, time.Time{}, time.Time{}, invalidRequest("INVALID_QUERY", "parámetros inválidos")
	}

	now := h.now().In(h.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	to := from.AddDate(0, 1, -1)
	if q.From != "" {
		if from, err = time.ParseInLocation(dateLayout, q.From, h.loc); err != nil {
			return 0, time.Time{}, time.Time{}, invalidRequest("INVALID_DATE", "inicio debe tener formato YYYY-MM-DD")
		}
	}
	if q.To != "" {
		if to, err = time.ParseInLocation(dateLayout, q.To, h.loc); err != nil {
			return 0, time.Time{}, time.Time{}, invalidRequest("INVALID_DATE", "fim debe tener formato YYYY-MM-DD")
		}
	}
	return id, from, to, nil
}

// Items godoc
// @Summary      Ítems de conciliación bancaria de una empresa
// @Description  Ordenados por fecha descendente. Empresa inexistente devuelve lista vacía.
// @Tags         reconciliacao
// @Security     Bearer
// @Produce      json
// @Param        empresaId  path   string  true   "ID de la empresa"
// @Param        inicio     query  string  false  "Inicio (YYYY-MM-DD). Default: primer día del mes."
// @Param        fim        query  string  false  "Fin (YYYY-MM-DD). Default: último día del mes."
// @Success      200  {array}   dto.ReconciliationItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reconciliacao/{empresaId} [get]
func (h *ReconciliationHandler) Items(c *fiber.Ctx) error {
	id, from, to, err := h.window(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetReconciliationItems(c.UserContext(), id, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de la conciliación de una empresa
// @Tags         reconciliacao
// @Security     Bearer
// @Produce      json
// @Param        empresaId  path   string  true   "ID de la empresa"
// @Param        inicio     query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        fim        query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.ReconciliationSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reconciliacao/{empresaId}/resumo [get]
func (h *ReconciliationHandler) Summary(c *fiber.Ctx) error {
	id, from, to, err := h.window(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetSummary(c.UserContext(), id, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Mark godoc
// @Summary      Marca un ítem como conciliado (admin)
// @Tags         reconciliacao
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "banco-N | pagar-N | receber-N"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reconciliacao/itens/{itemId}/reconciliar [post]
func (h *ReconciliationHandler) Mark(c *fiber.Ctx) error {
	ok, err := h.uc.MarkReconciled(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"item_id": c.Params("itemId"), "conciliado": ok})
}
