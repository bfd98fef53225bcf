package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reinierstore/store-api/internal/application/catalog"
	"github.com/reinierstore/store-api/internal/domain/entity"
	apphttp "github.com/reinierstore/store-api/internal/interfaces/http"
)

// fakeMonedas monedas en memoria; RefreshRates solo toca este repo y el proveedor.
type fakeMonedas struct{ rows []*entity.Currency }

func (f *fakeMonedas) List(_ context.Context) ([]*entity.Currency, error) { return f.rows, nil }

func (f *fakeMonedas) GetDefault(_ context.Context) (*entity.Currency, error) {
	for _, c := range f.rows {
		if c.IsDefault {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeMonedas) UpdateRate(_ context.Context, code string, rate decimal.Decimal) error {
	for _, c := range f.rows {
		if c.Code == code {
			c.ExchangeRate = rate
		}
	}
	return nil
}

type fakeProveedorTasas struct{ rates map[string]decimal.Decimal }

func (f *fakeProveedorTasas) FetchRates(_ context.Context, _ string) (map[string]decimal.Decimal, error) {
	return f.rates, nil
}

func TestCatalogHandler_RefreshRatesActualizaLasTasas(t *testing.T) {
	monedas := &fakeMonedas{rows: []*entity.Currency{
		{Code: "CUP", IsDefault: true, ExchangeRate: decimal.NewFromInt(1)},
		{Code: "USD", ExchangeRate: decimal.NewFromInt(300)},
	}}
	uc := catalog.NewCatalogUseCase(nil, nil, monedas, &fakeProveedorTasas{
		rates: map[string]decimal.Decimal{"USD": decimal.NewFromInt(320)},
	})
	app := fiber.New()
	app.Post("/api/currencies/refresh", apphttp.NewCatalogHandler(uc).RefreshRates)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/currencies/refresh", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "tasas actualizadas")
	assert.True(t, decimal.NewFromInt(320).Equal(monedas.rows[1].ExchangeRate),
		"la tasa del USD debe quedar actualizada tras el POST")
}

func TestCatalogHandler_RefreshRatesSinMonedaBaseRetorna404(t *testing.T) {
	uc := catalog.NewCatalogUseCase(nil, nil, &fakeMonedas{}, &fakeProveedorTasas{})
	app := fiber.New()
	app.Post("/api/currencies/refresh", apphttp.NewCatalogHandler(uc).RefreshRates)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/currencies/refresh", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
}
