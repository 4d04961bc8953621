package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/domain"
)

// writeError traduce errores de dominio a la respuesta HTTP correspondiente.
func writeError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return badRequest(c, reqErr.code, reqErr.msg)
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UPSTREAM_UNAVAILABLE", Message: "almacén de registros no disponible, intente más tarde"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// requestError parámetro de la petición rechazado antes de llegar al caso de uso.
type requestError struct {
	code string
	msg  string
}

func (e *requestError) Error() string { return e.msg }

func (e *requestError) Unwrap() error { return domain.ErrInvalidInput }

func invalidRequest(code, msg string) error {
	return &requestError{code: code, msg: msg}
}
