package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/application/usecase"
)

// FormulaHandler maneja las peticiones HTTP para Formula (protegido).
type FormulaHandler struct {
	uc *usecase.FormulaUseCase
}

// NewFormulaHandler construye el handler.
func NewFormulaHandler(uc *usecase.FormulaUseCase) *FormulaHandler {
	return &FormulaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear fórmula
// @Tags         formulas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFormulaRequest  true  "Datos de la fórmula"
// @Success      201   {object}  dto.FormulaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/formulas [post]
func (h *FormulaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(Actor(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener fórmula por ID
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la fórmula"
// @Success      200  {object}  dto.FormulaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id} [get]
func (h *FormulaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fórmula no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar fórmulas
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Búsqueda por nombre o código"
// @Success      200  {object}  dto.FormulaListResponse
// @Router       /api/formulas [get]
func (h *FormulaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("q"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar fórmula
// @Tags         formulas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la fórmula"
// @Param        body  body  dto.UpdateFormulaRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FormulaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/formulas/{id} [put]
func (h *FormulaHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateFormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(Actor(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fórmula no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar fórmula (solo admin)
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la fórmula"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id} [delete]
func (h *FormulaHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(Actor(c), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
