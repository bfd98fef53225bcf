package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer es una oferta temporal de la tienda; el storefront muestra una cuenta
// regresiva hasta EndsAt.
type Offer struct {
	ID          string
	ProductID   string
	Title       string
	DiscountPct decimal.Decimal // porcentaje de descuento sobre el precio
	StartsAt    time.Time
	EndsAt      time.Time
}

// Active indica si la oferta está vigente en el instante dado.
func (o Offer) Active(now time.Time) bool {
	return !now.Before(o.StartsAt) && now.Before(o.EndsAt)
}
