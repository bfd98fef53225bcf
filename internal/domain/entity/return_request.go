package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de devolución.
const (
	ReturnStatusPending    = "PENDING"
	ReturnStatusAuthorized = "AUTHORIZED"
)

// ReturnLine es una línea devuelta (cantidad de un producto de la venta).
type ReturnLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// ReturnRequest es una solicitud de devolución sobre una venta. Las líneas se
// guardan serializadas; al autorizarla, las unidades vuelven al gran almacén
// y la venta pasa a estado "returned".
type ReturnRequest struct {
	ID        string
	SaleID    string
	Lines     []ReturnLine
	Total     decimal.Decimal
	Status    string // PENDING | AUTHORIZED
	CreatedAt time.Time
}
