package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

// SalesFloorTarget es el piso objetivo de unidades por producto en sala de
// ventas; el relleno por lotes transfiere lo que falte para alcanzarlo.
const SalesFloorTarget = 5

// TransferUseCase mueve stock del gran almacén a la sala de ventas de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type TransferUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	historyRepo repository.HistoryRepository
}

// NewTransferUseCase construye el caso de uso de transferencias.
func NewTransferUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		historyRepo: historyRepo,
	}
}

// MoveToStoreInput entrada de una transferencia puntual. User es el actor de
// la sesión para el historial.
type MoveToStoreInput struct {
	ProductID string
	Quantity  int
	User      string
}

// MoveToStore resta Quantity del gran almacén y lo suma en sala de ventas,
// ambas mutaciones en una sola transacción. La fila de sala de ventas se crea
// con la cantidad si el producto nunca ha estado en sala; si existe, se
// incrementa. Falla con ErrInsufficientStock si el gran almacén quedaría en
// negativo; en ese caso ningún contador cambia.
func (uc *TransferUseCase) MoveToStore(ctx context.Context, in MoveToStoreInput) (*dto.MoveToStoreResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var mainAfter, salesAfter int
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		salesStockRepo repository.SalesStockRepository,
	) error {
		// Bloquea la fila del producto para serializar transferencias concurrentes
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}
		mainAfter = product.Stock - in.Quantity
		if err := productRepo.UpdateStock(ctx, in.ProductID, mainAfter); err != nil {
			return err
		}

		// Mutación explícita en sala de ventas: Create si no hay fila, Increment si existe
		current, err := salesStockRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if current == nil {
			salesAfter = in.Quantity
			return salesStockRepo.Create(ctx, in.ProductID, in.Quantity)
		}
		salesAfter = current.Stock + in.Quantity
		return salesStockRepo.Increment(ctx, in.ProductID, in.Quantity)
	})
	if err != nil {
		return nil, err
	}

	// Registro de auditoría, fuera de la transacción como en el flujo original
	actor := in.User
	if actor == "" {
		actor = "admin"
	}
	entry := &entity.HistoryEntry{
		ID:        uuid.New().String(),
		Action:    entity.HistoryActionStockUpdate,
		Details:   fmt.Sprintf("Stock del producto ID: %s actualizado a %d", in.ProductID, mainAfter),
		User:      actor,
		Location:  "gran almacén",
		Timestamp: time.Now(),
	}
	if err := uc.historyRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("registrar historial: %w", err)
	}

	return &dto.MoveToStoreResponse{
		ProductID:              in.ProductID,
		MainWarehouseQuantity:  mainAfter,
		SalesWarehouseQuantity: salesAfter,
	}, nil
}

// FillSalesFloor repone cada producto de la lista hasta SalesFloorTarget
// unidades en sala de ventas. Cada producto se transfiere en su propia
// transacción; el primer fallo aborta el resto del lote y se devuelve como
// error del lote completo (los productos ya transferidos quedan aplicados).
func (uc *TransferUseCase) FillSalesFloor(ctx context.Context, productIDs []string) ([]dto.TransferProductResponse, error) {
	if len(productIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, id := range productIDs {
		if id == "" {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.fillOne(ctx, id); err != nil {
			return nil, fmt.Errorf("producto %s: %w", id, err)
		}
	}

	views, err := uc.productRepo.ListWarehouseView(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]repository.ProductWarehouseView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}
	out := make([]dto.TransferProductResponse, 0, len(productIDs))
	for _, id := range productIDs {
		if v, ok := byID[id]; ok {
			out = append(out, toTransferProduct(v))
		}
	}
	return out, nil
}

// fillOne transfiere lo que falte para el piso objetivo; no hace nada si el
// producto ya está en o sobre el piso.
func (uc *TransferUseCase) fillOne(ctx context.Context, productID string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		salesStockRepo repository.SalesStockRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		current, err := salesStockRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		currentStock := 0
		if current != nil {
			currentStock = current.Stock
		}
		missing := SalesFloorTarget - currentStock
		if missing <= 0 {
			return nil
		}
		if product.Stock < missing {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(ctx, productID, product.Stock-missing); err != nil {
			return err
		}
		if current == nil {
			return salesStockRepo.Create(ctx, productID, missing)
		}
		return salesStockRepo.Increment(ctx, productID, missing)
	})
}

// ListTransferProducts devuelve todos los productos con ambos contadores para
// la pantalla de transferencias.
func (uc *TransferUseCase) ListTransferProducts(ctx context.Context) ([]dto.TransferProductResponse, error) {
	views, err := uc.productRepo.ListWarehouseView(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTransferProduct(v))
	}
	return out, nil
}

func toTransferProduct(v repository.ProductWarehouseView) dto.TransferProductResponse {
	return dto.TransferProductResponse{
		ID:                     v.ID,
		Name:                   v.Name,
		MainWarehouseQuantity:  v.MainStock,
		SalesWarehouseQuantity: v.SalesStock,
		Category:               v.Category,
		Image:                  v.Image,
	}
}
