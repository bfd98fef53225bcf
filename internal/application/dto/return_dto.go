package dto

import (
	"time"

	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateReturnRequest solicitud de devolución sobre una venta.
type CreateReturnRequest struct {
	SaleID   string              `json:"saleId"`
	Products []entity.ReturnLine `json:"products"`
	Total    decimal.Decimal     `json:"total"`
}

// UpdateReturnRequest cambio de estado de una solicitud (PENDING → AUTHORIZED).
type UpdateReturnRequest struct {
	Status string `json:"status"`
}

// ReturnResponse solicitud de devolución con sus líneas.
type ReturnResponse struct {
	ID        string              `json:"id"`
	SaleID    string              `json:"saleId"`
	Products  []entity.ReturnLine `json:"products"`
	Total     decimal.Decimal     `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}
