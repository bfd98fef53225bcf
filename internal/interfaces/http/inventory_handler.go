package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/application/inventory"
)

// InventoryHandler maneja las transferencias entre almacenes.
type InventoryHandler struct {
	uc *inventory.TransferUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *inventory.TransferUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// MoveToStore godoc
// @Summary      Transferir unidades del gran almacén a sala de ventas
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveToStoreRequest  true  "productId, quantity"
// @Success      200   {object}  dto.MoveToStoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/move-to-store [post]
func (h *InventoryHandler) MoveToStore(c *fiber.Ctx) error {
	var in dto.MoveToStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.MoveToStore(c.Context(), inventory.MoveToStoreInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		User:      GetEmail(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Fill godoc
// @Summary      Rellenar sala de ventas hasta el piso objetivo
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FillRequest  true  "products: [{id}]"
// @Success      200   {array}  dto.TransferProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouse-transfer/fill [post]
func (h *InventoryHandler) Fill(c *fiber.Ctx) error {
	var in dto.FillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ids := make([]string, 0, len(in.Products))
	for _, p := range in.Products {
		ids = append(ids, p.ID)
	}
	out, err := h.uc.FillSalesFloor(c.Context(), ids)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos con ambos contadores de almacén
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.TransferProductResponse
// @Router       /api/warehouse-transfer/products [get]
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListTransferProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
