package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/application/ports"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

// consolidator contrato mínimo del motor de consolidación que usa el handler.
type consolidator interface {
	ConsolidateCompany(ctx context.Context, companyID int64, period entity.PeriodKey) (*dto.ConsolidatedSummaryDTO, error)
	SummarizeGroup(ctx context.Context, period entity.PeriodKey) (*dto.GroupSummaryDTO, error)
}

// ConsolidationHandler resúmenes consolidados por empresa y del grupo, e informes descargables.
type ConsolidationHandler struct {
	uc      consolidator
	reports map[string]ports.GroupReportRenderer // por extensión
}

// NewConsolidationHandler construye el handler. Los renderers se indexan por su extensión.
func NewConsolidationHandler(uc consolidator, renderers ...ports.GroupReportRenderer) *ConsolidationHandler {
	h := &ConsolidationHandler{uc: uc, reports: make(map[string]ports.GroupReportRenderer, len(renderers))}
	for _, r := range renderers {
		h.reports[r.Extension()] = r
	}
	return h
}

func parsePeriod(c *fiber.Ctx) (entity.PeriodKey, bool) {
	p, err := entity.ParsePeriodKey(c.Params("periodo"))
	return p, err == nil
}

// Group godoc
// @Summary      Resumen consolidado del grupo en el mes
// @Description  Consolida todas las empresas abiertas. Las que fallan se listan en empresas_ignoradas.
// @Tags         consolidacao
// @Security     Bearer
// @Produce      json
// @Param        periodo  path  string  true  "Mes (YYYY-MM)"
// @Success      200  {object}  dto.GroupSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/consolidacao/{periodo} [get]
func (h *ConsolidationHandler) Group(c *fiber.Ctx) error {
	period, ok := parsePeriod(c)
	if !ok {
		return badRequest(c, "INVALID_PERIOD", "periodo debe tener formato YYYY-MM")
	}
	out, err := h.uc.SummarizeGroup(c.UserContext(), period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Company godoc
// @Summary      Resumen consolidado de una empresa en el mes
// @Tags         consolidacao
// @Security     Bearer
// @Produce      json
// @Param        periodo  path  string  true  "Mes (YYYY-MM)"
// @Param        id       path  int     true  "ID de la empresa"
// @Success      200  {object}  dto.ConsolidatedSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/consolidacao/{periodo}/empresas/{id} [get]
func (h *ConsolidationHandler) Company(c *fiber.Ctx) error {
	period, ok := parsePeriod(c)
	if !ok {
		return badRequest(c, "INVALID_PERIOD", "periodo debe tener formato YYYY-MM")
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "INVALID_ID", "id de empresa inválido")
	}
	out, err := h.uc.ConsolidateCompany(c.UserContext(), id, period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe del grupo en PDF o XLSX
// @Tags         consolidacao
// @Security     Bearer
// @Produce      application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        periodo  path  string  true  "Mes (YYYY-MM)"
// @Param        formato  path  string  true  "pdf | xlsx"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/consolidacao/{periodo}/relatorio.{formato} [get]
func (h *ConsolidationHandler) Report(c *fiber.Ctx) error {
	period, ok := parsePeriod(c)
	if !ok {
		return badRequest(c, "INVALID_PERIOD", "periodo debe tener formato YYYY-MM")
	}
	r, ok := h.reports[c.Params("formato")]
	if !ok {
		return badRequest(c, "INVALID_FORMAT", "formato soportado: pdf o xlsx")
	}
	summary, err := h.uc.SummarizeGroup(c.UserContext(), period)
	if err != nil {
		return writeError(c, err)
	}
	body, err := r.Render(c.UserContext(), summary)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, r.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=consolidacao-%s.%s", period, r.Extension()))
	return c.Send(body)
}
