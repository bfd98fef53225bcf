package sales

import (
	"context"

	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

// SaleTxRunner ejecuta el registro o la eliminación de una venta dentro de una
// transacción: la venta y los descuentos de stock se confirman juntos o ninguno.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		salesStockRepo repository.SalesStockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReturnTxRunner ejecuta la autorización de una devolución dentro de una
// transacción (marcar solicitud, reponer gran almacén, marcar la venta).
type ReturnTxRunner interface {
	RunReturn(ctx context.Context, fn func(
		returnRepo repository.ReturnRepository,
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptGenerator produce el ticket PDF de una venta.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, storeName string) ([]byte, error)
}
