package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductDTO producto en el top de ventas del dashboard.
type TopProductDTO struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Sales int    `json:"sales"`
}

// LowStockProductDTO producto con stock efectivo bajo.
type LowStockProductDTO struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Stock int    `json:"stock"`
}

// NameValueDTO par nombre/valor para gráficas de torta.
type NameValueDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MonthSalesDTO total vendido en un mes (YYYY-MM).
type MonthSalesDTO struct {
	Month string          `json:"month"`
	Sales decimal.Decimal `json:"sales"`
}

// PaymentMethodSalesDTO total vendido por método de pago.
type PaymentMethodSalesDTO struct {
	Method string          `json:"method"`
	Emoji  string          `json:"emoji"`
	Value  decimal.Decimal `json:"value"`
}

// HourSalesDTO total vendido en una hora del día ("HH:00").
type HourSalesDTO struct {
	Hour  string          `json:"hour"`
	Sales decimal.Decimal `json:"sales"`
}

// DashboardStatsResponse agregados del dashboard de administración.
type DashboardStatsResponse struct {
	TotalCategories      int                     `json:"totalCategories"`
	TotalProducts        int                     `json:"totalProducts"`
	MonthlySales         decimal.Decimal         `json:"monthlySales"`
	TopSellingProducts   []TopProductDTO         `json:"topSellingProducts"`
	LowStockProducts     []LowStockProductDTO    `json:"lowStockProducts"`
	SalesByCategory      []NameValueDTO          `json:"salesByCategory"`
	SalesComparison      []MonthSalesDTO         `json:"salesComparison"`
	SalesByPaymentMethod []PaymentMethodSalesDTO `json:"salesByPaymentMethod"`
	SalesByHour          []HourSalesDTO          `json:"salesByHour"`
}

// HistoryEntryResponse entrada del historial de auditoría.
type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	User      string    `json:"user"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}
