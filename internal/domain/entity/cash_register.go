package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegister es el cierre de caja de un día: número de ventas completadas
// y monto total. Lo genera el trabajo programado de las 23:59 (o un POST manual).
type CashRegister struct {
	ID          string
	Date        time.Time
	TotalSales  int
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}
