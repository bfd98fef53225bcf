package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reinierstore/store-api/internal/application/catalog"
	"github.com/reinierstore/store-api/internal/application/dto"
)

// CatalogHandler expone el catálogo público del storefront.
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler del storefront.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Products godoc
// @Summary      Catálogo con existencias de sala de ventas
// @Tags         catalog
// @Produce      json
// @Param        search  query  string  false  "filtro por nombre o categoría, sin distinguir tildes"
// @Success      200  {array}  dto.StorefrontProductResponse
// @Router       /api/almacen-ventas [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.Context(), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Offers godoc
// @Summary      Ofertas vigentes con precio rebajado
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.OfferResponse
// @Router       /api/offers [get]
func (h *CatalogHandler) Offers(c *fiber.Ctx) error {
	out, err := h.uc.ActiveOffers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Currencies godoc
// @Summary      Monedas de la tienda con tasas vigentes
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CurrencyResponse
// @Router       /api/currencies [get]
func (h *CatalogHandler) Currencies(c *fiber.Ctx) error {
	out, err := h.uc.ListCurrencies(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RefreshRates godoc
// @Summary      Refrescar las tasas de cambio desde el proveedor externo
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/currencies/refresh [post]
func (h *CatalogHandler) RefreshRates(c *fiber.Ctx) error {
	if err := h.uc.RefreshRates(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "tasas actualizadas"})
}
