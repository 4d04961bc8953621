package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
)

type balanceReader interface {
	BalancesByCompany(ctx context.Context) ([]dto.CompanyBalanceDTO, error)
	OverallBalance(ctx context.Context) (*dto.OverallBalanceDTO, error)
	BalanceVariation(ctx context.Context) (*dto.BalanceVariationDTO, error)
}

// BalanceHandler saldos bancarios agregados.
type BalanceHandler struct {
	svc balanceReader
}

func NewBalanceHandler(svc balanceReader) *BalanceHandler {
	return &BalanceHandler{svc: svc}
}

// ByCompany godoc
// @Summary      Saldo bancario por empresa
// @Description  Solo cuentas bancarias activas.
// @Tags         saldos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CompanyBalanceDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/saldos [get]
func (h *BalanceHandler) ByCompany(c *fiber.Ctx) error {
	out, err := h.svc.BalancesByCompany(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Overall godoc
// @Summary      Saldo bancario del grupo
// @Tags         saldos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverallBalanceDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/saldos/geral [get]
func (h *BalanceHandler) Overall(c *fiber.Ctx) error {
	out, err := h.svc.OverallBalance(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Variation godoc
// @Summary      Variación diaria y mensual del saldo
// @Tags         saldos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BalanceVariationDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/saldos/variacao [get]
func (h *BalanceHandler) Variation(c *fiber.Ctx) error {
	out, err := h.svc.BalanceVariation(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
