package repository

import (
	"context"
	"time"

	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OfferView es una oferta con los datos del producto que el storefront necesita
// para el slider con cuenta regresiva.
type OfferView struct {
	Offer       entity.Offer
	ProductName string
	Image       string
	Price       decimal.Decimal
}

// OfferRepository define el puerto de ofertas de la tienda.
type OfferRepository interface {
	Create(ctx context.Context, o *entity.Offer) error
	// ListActive devuelve las ofertas vigentes en el instante dado, próximas a vencer primero.
	ListActive(ctx context.Context, now time.Time) ([]OfferView, error)
}

// CurrencyRepository define el puerto de monedas y tasas de cambio.
type CurrencyRepository interface {
	List(ctx context.Context) ([]*entity.Currency, error)
	GetDefault(ctx context.Context) (*entity.Currency, error)
	UpdateRate(ctx context.Context, code string, rate decimal.Decimal) error
}
