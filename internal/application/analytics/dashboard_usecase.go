package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

// lowStockThreshold stock efectivo en o bajo este valor se reporta como inventario bajo.
const lowStockThreshold = 5

// DashboardUseCase agrega las métricas del dashboard de administración.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Stats calcula todos los agregados de /api/dashboard/stats. Los contadores se
// consultan por separado; las agregaciones pesadas viven en SQL.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	totalCategories, err := uc.repo.CountCategories(ctx)
	if err != nil {
		return nil, err
	}
	totalProducts, err := uc.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	monthly, err := uc.repo.SalesTotalBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	top, err := uc.repo.TopSellingProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	low, err := uc.repo.LowStockProducts(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	byCategory, err := uc.repo.SalesByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byMonth, err := uc.repo.SalesByMonth(ctx)
	if err != nil {
		return nil, err
	}
	byPayment, err := uc.repo.SalesByPaymentMethod(ctx)
	if err != nil {
		return nil, err
	}
	byHour, err := uc.repo.SalesByHour(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardStatsResponse{
		TotalCategories:      totalCategories,
		TotalProducts:        totalProducts,
		MonthlySales:         monthly,
		TopSellingProducts:   make([]dto.TopProductDTO, 0, len(top)),
		LowStockProducts:     make([]dto.LowStockProductDTO, 0, len(low)),
		SalesByCategory:      make([]dto.NameValueDTO, 0, len(byCategory)),
		SalesComparison:      make([]dto.MonthSalesDTO, 0, len(byMonth)),
		SalesByPaymentMethod: make([]dto.PaymentMethodSalesDTO, 0, len(byPayment)),
	}
	for _, t := range top {
		image := t.Image
		if image == "" {
			image = "/placeholder.svg"
		}
		resp.TopSellingProducts = append(resp.TopSellingProducts, dto.TopProductDTO{
			Name: t.Name, Image: image, Sales: t.UnitsSold,
		})
	}
	for _, l := range low {
		resp.LowStockProducts = append(resp.LowStockProducts, dto.LowStockProductDTO{
			Name: l.Name, Image: l.Image, Stock: l.Stock,
		})
	}
	for _, c := range byCategory {
		resp.SalesByCategory = append(resp.SalesByCategory, dto.NameValueDTO{Name: c.Category, Value: c.UnitsSold})
	}
	for _, m := range byMonth {
		resp.SalesComparison = append(resp.SalesComparison, dto.MonthSalesDTO{Month: m.Month, Sales: m.Total})
	}
	for _, p := range byPayment {
		resp.SalesByPaymentMethod = append(resp.SalesByPaymentMethod, dto.PaymentMethodSalesDTO{
			Method: p.Method, Emoji: paymentEmoji(p.Method), Value: p.Total,
		})
	}
	resp.SalesByHour = fillHours(byHour)
	return resp, nil
}

// fillHours genera las 24 horas del día aunque no tengan ventas.
func fillHours(rows []repository.HourSalesResult) []dto.HourSalesDTO {
	byHour := make(map[int]repository.HourSalesResult, len(rows))
	for _, r := range rows {
		byHour[r.Hour] = r
	}
	out := make([]dto.HourSalesDTO, 0, 24)
	for h := 0; h < 24; h++ {
		label := fmt.Sprintf("%02d:00", h)
		row := byHour[h]
		out = append(out, dto.HourSalesDTO{Hour: label, Sales: row.Total})
	}
	return out
}

func paymentEmoji(method string) string {
	switch strings.ToLower(method) {
	case "efectivo":
		return "💵"
	case "tarjeta":
		return "💳"
	default:
		return ""
	}
}
