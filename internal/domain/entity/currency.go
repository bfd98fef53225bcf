package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency es una moneda visible en la tienda. ExchangeRate es unidades de
// esta moneda por una unidad de la moneda base; la moneda base tiene tasa 1
// e IsDefault en true.
type Currency struct {
	Code         string // ISO 4217: CUP, USD, EUR...
	Name         string
	Symbol       string
	ExchangeRate decimal.Decimal
	IsDefault    bool
	UpdatedAt    time.Time
}
