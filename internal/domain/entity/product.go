package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es la cantidad en el gran almacén; la cantidad en sala de ventas
// vive en SalesStock y se repone mediante transferencias.
type Product struct {
	ID         string
	CategoryID string
	Name       string
	Image      string
	Price      decimal.Decimal // precio de venta en la moneda base
	Stock      int             // unidades en el gran almacén
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Category agrupa productos del catálogo.
type Category struct {
	ID   string
	Name string
}
