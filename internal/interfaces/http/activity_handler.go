package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aromalab/aromalab-api/internal/application/usecase"
)

// ActivityHandler expone el registro de actividad (protegido, solo lectura).
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Listar el registro de actividad (más reciente primero)
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActivityListResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
