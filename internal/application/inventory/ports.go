package inventory

import (
	"context"

	"github.com/reinierstore/store-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que las dos mutaciones de una
// transferencia (restar en gran almacén, sumar en sala de ventas) se
// confirmen juntas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		salesStockRepo repository.SalesStockRepository,
	) error) error
}
