package catalog

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RateProvider obtiene tasas de cambio frescas de un servicio externo.
// Devuelve unidades de cada moneda por una unidad de la moneda base.
type RateProvider interface {
	FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// CatalogUseCase consultas públicas del storefront: catálogo con stock de
// sala, ofertas vigentes y monedas con sus tasas.
type CatalogUseCase struct {
	productRepo  repository.ProductRepository
	offerRepo    repository.OfferRepository
	currencyRepo repository.CurrencyRepository
	rates        RateProvider
}

// NewCatalogUseCase construye el caso de uso del storefront.
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	offerRepo repository.OfferRepository,
	currencyRepo repository.CurrencyRepository,
	rates RateProvider,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		offerRepo:    offerRepo,
		currencyRepo: currencyRepo,
		rates:        rates,
	}
}

// ListProducts devuelve el catálogo con la cantidad disponible en sala de
// ventas. El filtro de búsqueda ignora mayúsculas y tildes ("limon" encuentra
// "Limón").
func (uc *CatalogUseCase) ListProducts(ctx context.Context, search string) ([]dto.StorefrontProductResponse, error) {
	views, err := uc.productRepo.ListWarehouseView(ctx)
	if err != nil {
		return nil, err
	}
	needle := foldAccents(search)
	out := make([]dto.StorefrontProductResponse, 0, len(views))
	for _, v := range views {
		if needle != "" && !strings.Contains(foldAccents(v.Name), needle) &&
			!strings.Contains(foldAccents(v.Category), needle) {
			continue
		}
		out = append(out, dto.StorefrontProductResponse{
			ID:       v.ID,
			Name:     v.Name,
			Category: v.Category,
			Image:    v.Image,
			Price:    v.Price,
			Stock:    v.SalesStock,
		})
	}
	return out, nil
}

// ActiveOffers devuelve las ofertas vigentes con el precio rebajado calculado,
// próximas a vencer primero (el storefront muestra la cuenta regresiva).
func (uc *CatalogUseCase) ActiveOffers(ctx context.Context) ([]dto.OfferResponse, error) {
	views, err := uc.offerRepo.ListActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	hundred := decimal.NewFromInt(100)
	out := make([]dto.OfferResponse, 0, len(views))
	for _, v := range views {
		discount := v.Price.Mul(v.Offer.DiscountPct).Div(hundred)
		out = append(out, dto.OfferResponse{
			ID:          v.Offer.ID,
			ProductID:   v.Offer.ProductID,
			ProductName: v.ProductName,
			Image:       v.Image,
			Title:       v.Offer.Title,
			Price:       v.Price,
			OfferPrice:  v.Price.Sub(discount).Round(2),
			DiscountPct: v.Offer.DiscountPct,
			EndDate:     v.Offer.EndsAt,
		})
	}
	return out, nil
}

// ListCurrencies devuelve las monedas de la tienda con sus tasas vigentes.
func (uc *CatalogUseCase) ListCurrencies(ctx context.Context) ([]dto.CurrencyResponse, error) {
	currencies, err := uc.currencyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CurrencyResponse, 0, len(currencies))
	for _, c := range currencies {
		out = append(out, dto.CurrencyResponse{
			Code:         c.Code,
			Name:         c.Name,
			Symbol:       c.Symbol,
			ExchangeRate: c.ExchangeRate,
			IsDefault:    c.IsDefault,
		})
	}
	return out, nil
}

// RefreshRates consulta el proveedor externo y actualiza la tasa de cada
// moneda no base que el proveedor conozca. La moneda base conserva tasa 1.
func (uc *CatalogUseCase) RefreshRates(ctx context.Context) error {
	base, err := uc.currencyRepo.GetDefault(ctx)
	if err != nil {
		return err
	}
	if base == nil {
		return domain.ErrNotFound
	}
	fresh, err := uc.rates.FetchRates(ctx, base.Code)
	if err != nil {
		return err
	}
	currencies, err := uc.currencyRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range currencies {
		if c.IsDefault {
			continue
		}
		rate, ok := fresh[c.Code]
		if !ok || !rate.GreaterThan(decimal.Zero) {
			continue
		}
		if err := uc.currencyRepo.UpdateRate(ctx, c.Code, rate); err != nil {
			return err
		}
	}
	return nil
}

// foldAccents normaliza a minúsculas sin marcas diacríticas (NFD + quitar Mn).
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}
