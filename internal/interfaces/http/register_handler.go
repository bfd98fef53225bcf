package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/application/sales"
)

// RegisterHandler maneja el estado y cierre de caja.
type RegisterHandler struct {
	uc *sales.RegisterUseCase
}

// NewRegisterHandler construye el handler de caja.
func NewRegisterHandler(uc *sales.RegisterUseCase) *RegisterHandler {
	return &RegisterHandler{uc: uc}
}

// Today godoc
// @Summary      Estado de caja del día en curso
// @Tags         register
// @Produce      json
// @Success      200  {object}  dto.CashRegisterStatusResponse
// @Router       /api/cash-register [get]
func (h *RegisterHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.Today(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Snapshot godoc
// @Summary      Persistir el cierre de caja del día
// @Tags         register
// @Produce      json
// @Success      201  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash-register [post]
func (h *RegisterHandler) Snapshot(c *fiber.Ctx) error {
	if err := h.uc.Snapshot(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "cierre de caja registrado"})
}

// History godoc
// @Summary      Últimos cierres de caja
// @Tags         register
// @Produce      json
// @Param        limit  query  int  false  "máximo de cierres (default 30)"
// @Success      200  {array}  dto.CashRegisterSnapshotResponse
// @Router       /api/cash-register/history [get]
func (h *RegisterHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
