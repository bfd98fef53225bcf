package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/application/sales"
	"github.com/reinierstore/store-api/internal/domain/entity"
)

// ReturnsHandler maneja las solicitudes de devolución.
type ReturnsHandler struct {
	uc *sales.ReturnUseCase
}

// NewReturnsHandler construye el handler de devoluciones.
func NewReturnsHandler(uc *sales.ReturnUseCase) *ReturnsHandler {
	return &ReturnsHandler{uc: uc}
}

// List godoc
// @Summary      Listar solicitudes de devolución
// @Tags         returns
// @Produce      json
// @Success      200  {array}  dto.ReturnResponse
// @Router       /api/returns [get]
func (h *ReturnsHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar una solicitud de devolución
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "saleId, products, total"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnsHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Autorizar una devolución (status AUTHORIZED)
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la solicitud"
// @Param        body  body  dto.UpdateReturnRequest  true  "status"
// @Success      200   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [put]
func (h *ReturnsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status != entity.ReturnStatusAuthorized {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el único cambio de estado permitido es AUTHORIZED"})
	}
	out, err := h.uc.Authorize(c.Context(), c.Params("id"), GetEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
