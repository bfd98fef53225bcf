package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reinierstore/store-api/internal/application/history"
)

// HistoryHandler expone el historial de auditoría.
type HistoryHandler struct {
	uc *history.HistoryUseCase
}

// NewHistoryHandler construye el handler de historial.
func NewHistoryHandler(uc *history.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// Latest godoc
// @Summary      Últimas 100 entradas del historial
// @Tags         history
// @Produce      json
// @Success      200  {array}  dto.HistoryEntryResponse
// @Router       /api/historial [get]
func (h *HistoryHandler) Latest(c *fiber.Ctx) error {
	out, err := h.uc.Latest(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
