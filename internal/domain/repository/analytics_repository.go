package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult producto con sus unidades vendidas acumuladas.
type TopProductResult struct {
	ProductID string
	Name      string
	Image     string
	UnitsSold int
}

// LowStockResult producto cuyo stock efectivo (sala de ventas si existe, si no
// gran almacén) está en o bajo el umbral.
type LowStockResult struct {
	Name  string
	Image string
	Stock int
}

// CategorySalesResult unidades vendidas por categoría.
type CategorySalesResult struct {
	Category  string
	UnitsSold int
}

// MonthSalesResult total vendido por mes (formato YYYY-MM).
type MonthSalesResult struct {
	Month string
	Total decimal.Decimal
}

// PaymentSalesResult total vendido por método de pago.
type PaymentSalesResult struct {
	Method string
	Total  decimal.Decimal
}

// HourSalesResult total vendido por hora del día (0-23).
type HourSalesResult struct {
	Hour  int
	Total decimal.Decimal
}

// AnalyticsRepository define las consultas de agregación del dashboard.
type AnalyticsRepository interface {
	CountCategories(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
	// SalesTotalBetween suma las ventas completadas del rango.
	SalesTotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	TopSellingProducts(ctx context.Context, limit int) ([]TopProductResult, error)
	LowStockProducts(ctx context.Context, threshold int) ([]LowStockResult, error)
	SalesByCategory(ctx context.Context) ([]CategorySalesResult, error)
	SalesByMonth(ctx context.Context) ([]MonthSalesResult, error)
	SalesByPaymentMethod(ctx context.Context) ([]PaymentSalesResult, error)
	SalesByHour(ctx context.Context) ([]HourSalesResult, error)
}
