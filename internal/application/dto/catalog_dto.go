package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StorefrontProductResponse producto del catálogo público con la cantidad
// disponible en sala de ventas.
type StorefrontProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"` // unidades en sala de ventas
}

// OfferResponse oferta vigente para el slider del storefront.
type OfferResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Image       string          `json:"image"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	OfferPrice  decimal.Decimal `json:"offerPrice"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	EndDate     time.Time       `json:"endDate"` // cuenta regresiva del storefront
}

// CurrencyResponse moneda con tasa de cambio vigente.
type CurrencyResponse struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	IsDefault    bool            `json:"isDefault"`
}
