package entity

import "time"

// Acciones registradas en el historial.
const (
	HistoryActionStockUpdate = "actualizacion_stock"
	HistoryActionSale        = "venta"
	HistoryActionReturn      = "devolucion"
)

// HistoryEntry es una entrada del historial de auditoría. Solo se inserta,
// nunca se modifica ni se borra.
type HistoryEntry struct {
	ID        string
	Action    string
	Details   string
	User      string // identidad del actor (email o "admin")
	Location  string // etiqueta de ubicación: "gran almacén", "sala de ventas", ...
	Timestamp time.Time
}
