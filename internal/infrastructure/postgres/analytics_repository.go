package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/reinierstore/store-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de agregación del dashboard sobre PostgreSQL.
// Solo cuenta ventas completadas: las devueltas quedan fuera de las métricas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de métricas.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) CountCategories(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// SalesTotalBetween suma el total de las ventas completadas del rango [from, to).
func (r *AnalyticsRepo) SalesTotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2`, from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sales total between: %w", err)
	}
	return total, nil
}

// TopSellingProducts devuelve los productos con más unidades vendidas.
func (r *AnalyticsRepo) TopSellingProducts(ctx context.Context, limit int) ([]repository.TopProductResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.image, SUM(sp.quantity)::int AS units
		FROM sale_products sp
		JOIN sales s ON s.id = sp.sale_id AND s.status = 'completed'
		JOIN products p ON p.id = sp.product_id
		GROUP BY p.id, p.name, p.image
		ORDER BY units DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling products: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.Name, &t.Image, &t.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// LowStockProducts devuelve los productos cuyo stock efectivo (sala de ventas
// si existe fila, si no gran almacén) está en o bajo el umbral.
func (r *AnalyticsRepo) LowStockProducts(ctx context.Context, threshold int) ([]repository.LowStockResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.name, p.image, COALESCE(av.stock, p.stock) AS effective
		FROM products p
		LEFT JOIN almacen_ventas av ON av.product_id = p.id
		WHERE COALESCE(av.stock, p.stock) <= $1
		ORDER BY effective ASC, p.name ASC`, threshold)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockResult
	for rows.Next() {
		var l repository.LowStockResult
		if err := rows.Scan(&l.Name, &l.Image, &l.Stock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SalesByCategory unidades vendidas agrupadas por categoría.
func (r *AnalyticsRepo) SalesByCategory(ctx context.Context) ([]repository.CategorySalesResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.name, SUM(sp.quantity)::int AS units
		FROM sale_products sp
		JOIN sales s ON s.id = sp.sale_id AND s.status = 'completed'
		JOIN products p ON p.id = sp.product_id
		JOIN categories c ON c.id = p.category_id
		GROUP BY c.name
		ORDER BY units DESC`)
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}
	defer rows.Close()

	var out []repository.CategorySalesResult
	for rows.Next() {
		var c repository.CategorySalesResult
		if err := rows.Scan(&c.Category, &c.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan category sales: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SalesByMonth total vendido por mes en formato YYYY-MM, ascendente.
func (r *AnalyticsRepo) SalesByMonth(ctx context.Context) ([]repository.MonthSalesResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'completed'
		GROUP BY month
		ORDER BY month ASC`)
	if err != nil {
		return nil, fmt.Errorf("sales by month: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthSalesResult
	for rows.Next() {
		var m repository.MonthSalesResult
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("scan month sales: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SalesByPaymentMethod total vendido por método de pago.
func (r *AnalyticsRepo) SalesByPaymentMethod(ctx context.Context) ([]repository.PaymentSalesResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT payment_method, COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'completed'
		GROUP BY payment_method
		ORDER BY payment_method ASC`)
	if err != nil {
		return nil, fmt.Errorf("sales by payment method: %w", err)
	}
	defer rows.Close()

	var out []repository.PaymentSalesResult
	for rows.Next() {
		var p repository.PaymentSalesResult
		if err := rows.Scan(&p.Method, &p.Total); err != nil {
			return nil, fmt.Errorf("scan payment sales: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SalesByHour total vendido por hora del día (solo las horas con ventas).
func (r *AnalyticsRepo) SalesByHour(ctx context.Context) ([]repository.HourSalesResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour, COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'completed'
		GROUP BY hour
		ORDER BY hour ASC`)
	if err != nil {
		return nil, fmt.Errorf("sales by hour: %w", err)
	}
	defer rows.Close()

	var out []repository.HourSalesResult
	for rows.Next() {
		var h repository.HourSalesResult
		if err := rows.Scan(&h.Hour, &h.Total); err != nil {
			return nil, fmt.Errorf("scan hour sales: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
