package exchange

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/reinierstore/store-api/internal/application/catalog"
	"github.com/reinierstore/store-api/pkg/config"
)

var _ catalog.RateProvider = (*Client)(nil)

// Client consulta tasas de cambio contra la API pública de open.er-api.com.
type Client struct {
	httpClient *resty.Client
}

// NewClient construye el cliente de tasas con la configuración dada.
func NewClient(cfg config.ExchangeConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient}
}

// ratesResponse es el payload de /latest/{base} de open.er-api.com.
type ratesResponse struct {
	Result    string                     `json:"result"`
	BaseCode  string                     `json:"base_code"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	ErrorType string                     `json:"error-type"`
}

// FetchRates devuelve las tasas vigentes expresadas como unidades de cada
// moneda por una unidad de la moneda base.
func (c *Client) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	result := new(ratesResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get(fmt.Sprintf("/latest/%s", base))
	if err != nil {
		return nil, fmt.Errorf("fetch exchange rates: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest || result.Result != "success" {
		return nil, fmt.Errorf("exchange api error: status=%d, type=%s", resp.StatusCode(), result.ErrorType)
	}

	return result.Rates, nil
}
