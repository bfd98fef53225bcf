package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta entrante: precio congelado por el POS.
type SaleLineRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreateSaleRequest registro de una venta desde el panel de empleado.
type CreateSaleRequest struct {
	Products      []SaleLineRequest `json:"products"`
	Total         decimal.Decimal   `json:"total"`
	PaymentMethod string            `json:"paymentMethod"`
}

// UpdateSaleRequest corrección de una venta existente. Los campos son
// punteros: un campo ausente en el JSON conserva el valor actual de la venta.
type UpdateSaleRequest struct {
	Total         *decimal.Decimal `json:"total,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	Status        *string          `json:"status,omitempty"`
}

// SaleLineResponse línea de venta con nombre de producto denormalizado.
type SaleLineResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	Status        string             `json:"status"`
	Products      []SaleLineResponse `json:"products"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// CashRegisterStatusResponse estado de caja del día en curso.
type CashRegisterStatusResponse struct {
	TotalSales  int             `json:"totalSales"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// CashRegisterSnapshotResponse un cierre de caja ya persistido.
type CashRegisterSnapshotResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	TotalSales  int             `json:"totalSales"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}
