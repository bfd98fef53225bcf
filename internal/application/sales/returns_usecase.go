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

// ReturnUseCase gestiona solicitudes de devolución. Al autorizar una, las
// unidades devueltas se reintroducen en el gran almacén (no en sala de
// ventas) y la venta pasa a "returned", todo en una transacción.
type ReturnUseCase struct {
	txRunner    ReturnTxRunner
	returnRepo  repository.ReturnRepository
	saleRepo    repository.SaleRepository
	historyRepo repository.HistoryRepository
}

// NewReturnUseCase construye el caso de uso de devoluciones.
func NewReturnUseCase(
	txRunner ReturnTxRunner,
	returnRepo repository.ReturnRepository,
	saleRepo repository.SaleRepository,
	historyRepo repository.HistoryRepository,
) *ReturnUseCase {
	return &ReturnUseCase{
		txRunner:    txRunner,
		returnRepo:  returnRepo,
		saleRepo:    saleRepo,
		historyRepo: historyRepo,
	}
}

// Create registra una solicitud de devolución en estado PENDING con la
// instantánea de líneas devueltas.
func (uc *ReturnUseCase) Create(ctx context.Context, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if in.SaleID == "" || len(in.Products) == 0 || in.Total.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Products {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	sale, err := uc.saleRepo.GetByID(ctx, in.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	req := &entity.ReturnRequest{
		ID:        uuid.New().String(),
		SaleID:    in.SaleID,
		Lines:     in.Products,
		Total:     in.Total,
		Status:    entity.ReturnStatusPending,
		CreatedAt: time.Now(),
	}
	if err := uc.returnRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return toReturnResponse(req), nil
}

// Authorize marca la solicitud como AUTHORIZED, incrementa Product.stock por
// cada línea devuelta y marca la venta como devuelta. Autorizar dos veces es
// ErrConflict; nada cambia en ese caso.
func (uc *ReturnUseCase) Authorize(ctx context.Context, id, actor string) (*dto.ReturnResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	var authorized *entity.ReturnRequest
	err := uc.txRunner.RunReturn(ctx, func(
		returnRepo repository.ReturnRepository,
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		req, err := returnRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status == entity.ReturnStatusAuthorized {
			return domain.ErrConflict
		}
		if err := returnRepo.UpdateStatus(ctx, id, entity.ReturnStatusAuthorized); err != nil {
			return err
		}
		// Las unidades devueltas vuelven al gran almacén
		for _, l := range req.Lines {
			if err := productRepo.IncrementStock(ctx, l.ProductID, l.Quantity); err != nil {
				return err
			}
		}
		if err := saleRepo.UpdateStatus(ctx, req.SaleID, entity.SaleStatusReturned); err != nil {
			return err
		}
		req.Status = entity.ReturnStatusAuthorized
		authorized = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	if actor == "" {
		actor = "admin"
	}
	entry := &entity.HistoryEntry{
		ID:        uuid.New().String(),
		Action:    entity.HistoryActionReturn,
		Details:   fmt.Sprintf("Devolución %s autorizada (venta %s)", authorized.ID, authorized.SaleID),
		User:      actor,
		Location:  "gran almacén",
		Timestamp: time.Now(),
	}
	if err := uc.historyRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("registrar historial: %w", err)
	}
	return toReturnResponse(authorized), nil
}

// List devuelve todas las solicitudes, más recientes primero.
func (uc *ReturnUseCase) List(ctx context.Context) ([]dto.ReturnResponse, error) {
	reqs, err := uc.returnRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, *toReturnResponse(r))
	}
	return out, nil
}

func toReturnResponse(r *entity.ReturnRequest) *dto.ReturnResponse {
	return &dto.ReturnResponse{
		ID:        r.ID,
		SaleID:    r.SaleID,
		Products:  r.Lines,
		Total:     r.Total,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
