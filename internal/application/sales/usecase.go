package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SaleUseCase registra y consulta ventas del panel de empleado. Cada venta
// descuenta sus líneas del contador de sala de ventas en la misma transacción
// que la inserta.
type SaleUseCase struct {
	txRunner    SaleTxRunner
	saleRepo    repository.SaleRepository
	historyRepo repository.HistoryRepository
	receipts    ReceiptGenerator
	storeName   string
}

// NewSaleUseCase construye el caso de uso de ventas.
func NewSaleUseCase(
	txRunner SaleTxRunner,
	saleRepo repository.SaleRepository,
	historyRepo repository.HistoryRepository,
	receipts ReceiptGenerator,
	storeName string,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		historyRepo: historyRepo,
		receipts:    receipts,
		storeName:   storeName,
	}
}

// Create registra una venta completada: inserta la venta con sus líneas y
// descuenta cada línea de sala de ventas, todo en una transacción. Falla con
// ErrInsufficientStock si alguna línea excede lo disponible en sala; en ese
// caso no se persiste nada.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest, actor string) (*dto.SaleResponse, error) {
	if len(in.Products) == 0 || in.Total.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Products {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentCash
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		Total:         in.Total,
		PaymentMethod: method,
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		salesStockRepo repository.SalesStockRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, l := range in.Products {
			product, err := productRepo.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			// Bloquea el contador de sala antes de descontar
			stock, err := salesStockRepo.GetForUpdate(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if stock == nil || stock.Stock < l.Quantity {
				return domain.ErrInsufficientStock
			}
			if err := salesStockRepo.Increment(ctx, l.ProductID, -l.Quantity); err != nil {
				return err
			}
			sale.Lines = append(sale.Lines, entity.SaleLine{
				SaleID:      sale.ID,
				ProductID:   l.ProductID,
				ProductName: product.Name,
				Quantity:    l.Quantity,
				Price:       l.Price,
			})
		}
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	if actor == "" {
		actor = "empleado"
	}
	entry := &entity.HistoryEntry{
		ID:        uuid.New().String(),
		Action:    entity.HistoryActionSale,
		Details:   fmt.Sprintf("Venta %s por %s (%s)", sale.ID, sale.Total.StringFixed(2), method),
		User:      actor,
		Location:  "sala de ventas",
		Timestamp: now,
	}
	if err := uc.historyRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("registrar historial: %w", err)
	}

	return toSaleResponse(sale), nil
}

// List devuelve las últimas ventas, más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context, limit int) ([]dto.SaleResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	sales, err := uc.saleRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

// Update corrige total, método de pago o estado de una venta existente. Los
// campos ausentes de la petición conservan el valor que la venta ya tiene.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	total := sale.Total
	if in.Total != nil {
		if in.Total.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total = *in.Total
	}
	method := sale.PaymentMethod
	if in.PaymentMethod != nil && *in.PaymentMethod != "" {
		method = *in.PaymentMethod
	}
	status := sale.Status
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}
	if status != entity.SaleStatusCompleted && status != entity.SaleStatusReturned {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.saleRepo.Update(ctx, id, total, method, status); err != nil {
		return nil, err
	}
	return uc.get(ctx, id)
}

// Delete elimina una venta y devuelve las unidades de sus líneas al gran
// almacén, en una sola transacción.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.SalesStockRepository,
		productRepo repository.ProductRepository,
	) error {
		sale, err := saleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		for _, l := range sale.Lines {
			if err := productRepo.IncrementStock(ctx, l.ProductID, l.Quantity); err != nil {
				return err
			}
		}
		return saleRepo.Delete(ctx, id)
	})
}

// Receipt genera el ticket PDF de una venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.GenerateSaleReceipt(ctx, sale, uc.storeName)
}

func (uc *SaleUseCase) get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SaleLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		Products:      lines,
		CreatedAt:     s.CreatedAt,
	}
}
