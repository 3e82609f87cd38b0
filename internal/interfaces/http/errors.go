package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/domain"
)

// handleError traduce los errores de dominio al status HTTP y cuerpo de error.
// Mapa completo:
//
//	400 entrada inválida
//	401 credenciales
//	403 rol
//	404 no encontrado
//	409 conflicto de estado (orden no pendiente, borrado bloqueado, duplicado)
//	422 stock insuficiente
//	500 el resto
func handleError(c *fiber.Ctx, err error) error {
	var inUse *domain.MaterialInUseError
	if errors.As(err, &inUse) {
		blocking := make([]dto.BlockingFormula, len(inUse.Formulas))
		for i, f := range inUse.Formulas {
			blocking[i] = dto.BlockingFormula{ID: f.ID, Code: f.Code, Name: f.Name}
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:     "DELETE_BLOCKED",
			Message:  inUse.Error(),
			Blocking: blocking,
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrOrderNotPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_NOT_PENDING", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_TAKEN", Message: "email ya registrado"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
