package entity

import "time"

// SalesStock es el contador de unidades de un producto en la sala de ventas
// (tabla almacen_ventas). La fila se crea en la primera transferencia desde
// el gran almacén y se descuenta con cada venta.
type SalesStock struct {
	ProductID string
	Stock     int
	UpdatedAt time.Time
}
