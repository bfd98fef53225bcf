package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusReturned  = "returned"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash = "efectivo"
	PaymentCard = "tarjeta"
)

// Sale es una venta registrada en el panel de empleado.
type Sale struct {
	ID            string
	Total         decimal.Decimal
	PaymentMethod string
	Status        string // completed | returned
	Lines         []SaleLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleLine es una línea de venta con el precio congelado al momento de vender.
type SaleLine struct {
	SaleID      string
	ProductID   string
	ProductName string // denormalizado para listados y recibos
	Quantity    int
	Price       decimal.Decimal
}
