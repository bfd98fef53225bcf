package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/application/sales"
	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// tienda es el estado compartido de los fakes: gran almacén, sala de ventas,
// ventas, devoluciones e historial.
type tienda struct {
	products   map[string]*entity.Product
	salesStock map[string]int
	sales      map[string]*entity.Sale
	returns    map[string]*entity.ReturnRequest
	history    []*entity.HistoryEntry
}

func nuevaTienda() *tienda {
	return &tienda{
		products:   make(map[string]*entity.Product),
		salesStock: make(map[string]int),
		sales:      make(map[string]*entity.Sale),
		returns:    make(map[string]*entity.ReturnRequest),
	}
}

// snapshot copia el estado mutable para poder simular el rollback transaccional.
func (s *tienda) snapshot() *tienda {
	cp := nuevaTienda()
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	for id, n := range s.salesStock {
		cp.salesStock[id] = n
	}
	for id, v := range s.sales {
		c := *v
		cp.sales[id] = &c
	}
	for id, r := range s.returns {
		c := *r
		cp.returns[id] = &c
	}
	return cp
}

func (s *tienda) restore(from *tienda) {
	s.products = from.products
	s.salesStock = from.salesStock
	s.sales = from.sales
	s.returns = from.returns
}

type fakeProductRepo struct{ s *tienda }

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.s.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (f *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	p, ok := f.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (f *fakeProductRepo) IncrementStock(_ context.Context, id string, delta int) error {
	p, ok := f.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
	return nil
}

func (f *fakeProductRepo) ListWarehouseView(_ context.Context) ([]repository.ProductWarehouseView, error) {
	return nil, nil
}

type fakeSalesStockRepo struct{ s *tienda }

func (f *fakeSalesStockRepo) GetForUpdate(_ context.Context, productID string) (*entity.SalesStock, error) {
	n, ok := f.s.salesStock[productID]
	if !ok {
		return nil, nil
	}
	return &entity.SalesStock{ProductID: productID, Stock: n}, nil
}

func (f *fakeSalesStockRepo) Create(_ context.Context, productID string, stock int) error {
	f.s.salesStock[productID] = stock
	return nil
}

func (f *fakeSalesStockRepo) Increment(_ context.Context, productID string, delta int) error {
	f.s.salesStock[productID] += delta
	return nil
}

type fakeSaleRepo struct{ s *tienda }

func (f *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	c := *sale
	f.s.sales[sale.ID] = &c
	return nil
}

func (f *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	sale, ok := f.s.sales[id]
	if !ok {
		return nil, nil
	}
	c := *sale
	return &c, nil
}

func (f *fakeSaleRepo) List(_ context.Context, limit int) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(f.s.sales))
	for _, sale := range f.s.sales {
		out = append(out, sale)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) Update(_ context.Context, id string, total decimal.Decimal, paymentMethod, status string) error {
	sale, ok := f.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Total = total
	sale.PaymentMethod = paymentMethod
	sale.Status = status
	return nil
}

func (f *fakeSaleRepo) UpdateStatus(_ context.Context, id, status string) error {
	sale, ok := f.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Status = status
	return nil
}

func (f *fakeSaleRepo) Delete(_ context.Context, id string) error {
	delete(f.s.sales, id)
	return nil
}

func (f *fakeSaleRepo) SummaryBetween(_ context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	count, total := 0, decimal.Zero
	for _, sale := range f.s.sales {
		if sale.Status != entity.SaleStatusCompleted {
			continue
		}
		if sale.CreatedAt.Before(from) || sale.CreatedAt.After(to) {
			continue
		}
		count++
		total = total.Add(sale.Total)
	}
	return count, total, nil
}

type fakeReturnRepo struct{ s *tienda }

func (f *fakeReturnRepo) Create(_ context.Context, r *entity.ReturnRequest) error {
	c := *r
	f.s.returns[r.ID] = &c
	return nil
}

func (f *fakeReturnRepo) GetByID(_ context.Context, id string) (*entity.ReturnRequest, error) {
	r, ok := f.s.returns[id]
	if !ok {
		return nil, nil
	}
	c := *r
	return &c, nil
}

func (f *fakeReturnRepo) UpdateStatus(_ context.Context, id, status string) error {
	r, ok := f.s.returns[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeReturnRepo) List(_ context.Context) ([]*entity.ReturnRequest, error) {
	out := make([]*entity.ReturnRequest, 0, len(f.s.returns))
	for _, r := range f.s.returns {
		out = append(out, r)
	}
	return out, nil
}

type fakeHistoryRepo struct{ s *tienda }

func (f *fakeHistoryRepo) Create(_ context.Context, e *entity.HistoryEntry) error {
	f.s.history = append(f.s.history, e)
	return nil
}

func (f *fakeHistoryRepo) Latest(_ context.Context, limit int) ([]*entity.HistoryEntry, error) {
	if limit > len(f.s.history) {
		limit = len(f.s.history)
	}
	return f.s.history[:limit], nil
}

// fakeTxRunner simula la transacción con snapshot/restore: si fn falla, el
// estado vuelve exactamente al de antes.
type fakeTxRunner struct{ s *tienda }

func (f *fakeTxRunner) RunSale(ctx context.Context, fn func(
	repository.SaleRepository, repository.SalesStockRepository, repository.ProductRepository,
) error) error {
	snap := f.s.snapshot()
	if err := fn(&fakeSaleRepo{f.s}, &fakeSalesStockRepo{f.s}, &fakeProductRepo{f.s}); err != nil {
		f.s.restore(snap)
		return err
	}
	return nil
}

func (f *fakeTxRunner) RunReturn(ctx context.Context, fn func(
	repository.ReturnRepository, repository.SaleRepository, repository.ProductRepository,
) error) error {
	snap := f.s.snapshot()
	if err := fn(&fakeReturnRepo{f.s}, &fakeSaleRepo{f.s}, &fakeProductRepo{f.s}); err != nil {
		f.s.restore(snap)
		return err
	}
	return nil
}

type fakeReceipts struct{ lastSale *entity.Sale }

func (f *fakeReceipts) GenerateSaleReceipt(_ context.Context, sale *entity.Sale, _ string) ([]byte, error) {
	f.lastSale = sale
	return []byte("%PDF-1.7 ticket"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func nuevoSaleUC(s *tienda) (*sales.SaleUseCase, *fakeReceipts) {
	receipts := &fakeReceipts{}
	uc := sales.NewSaleUseCase(&fakeTxRunner{s}, &fakeSaleRepo{s}, &fakeHistoryRepo{s}, receipts, "Reinier Store")
	return uc, receipts
}

func nuevoReturnUC(s *tienda) *sales.ReturnUseCase {
	return sales.NewReturnUseCase(&fakeTxRunner{s}, &fakeReturnRepo{s}, &fakeSaleRepo{s}, &fakeHistoryRepo{s})
}

// conProducto registra un producto con stock en gran almacén y en sala.
func conProducto(s *tienda, id, name string, mainStock, salesStock int) {
	s.products[id] = &entity.Product{ID: id, Name: name, Price: decimal.NewFromInt(10), Stock: mainStock}
	if salesStock > 0 {
		s.salesStock[id] = salesStock
	}
}

func venta(t *testing.T, uc *sales.SaleUseCase, lines ...dto.SaleLineRequest) *dto.SaleResponse {
	t.Helper()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Products: lines, Total: total, PaymentMethod: entity.PaymentCash,
	}, "empleado@reinierstore.com")
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaSalaDeVentas(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	uc, _ := nuevoSaleUC(s)

	out := venta(t, uc, dto.SaleLineRequest{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(10)})

	assert.Equal(t, 3, s.salesStock["prod-1"], "la venta descuenta la sala de ventas")
	assert.Equal(t, 20, s.products["prod-1"].Stock, "el gran almacén no se toca al vender")
	assert.Equal(t, entity.SaleStatusCompleted, out.Status)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Limón", out.Products[0].ProductName, "el nombre queda congelado en la línea")

	require.Len(t, s.history, 1, "cada venta deja una entrada de historial")
	assert.Equal(t, entity.HistoryActionSale, s.history[0].Action)
	assert.Equal(t, "empleado@reinierstore.com", s.history[0].User)
}

func TestCreateSale_StockInsuficiente_NoPersisteNada(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	conProducto(s, "prod-2", "Mango", 20, 1)
	uc, _ := nuevoSaleUC(s)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Products: []dto.SaleLineRequest{
			{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(10)},
			{ProductID: "prod-2", Quantity: 3, Price: decimal.NewFromInt(10)},
		},
		Total: decimal.NewFromInt(50),
	}, "empleado@reinierstore.com")

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, s.salesStock["prod-1"], "la línea anterior debe revertirse con la transacción")
	assert.Equal(t, 1, s.salesStock["prod-2"])
	assert.Empty(t, s.sales, "no debe persistirse ninguna venta")
	assert.Empty(t, s.history)
}

func TestCreateSale_ProductoSinFilaEnSala(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 0) // nunca transferido a sala
	uc, _ := nuevoSaleUC(s)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Products: []dto.SaleLineRequest{{ProductID: "prod-1", Quantity: 1, Price: decimal.NewFromInt(10)}},
		Total:    decimal.NewFromInt(10),
	}, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateSale_EntradaInvalida(t *testing.T) {
	s := nuevaTienda()
	uc, _ := nuevoSaleUC(s)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{Total: decimal.NewFromInt(10)}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas")

	_, err = uc.Create(context.Background(), dto.CreateSaleRequest{
		Products: []dto.SaleLineRequest{{ProductID: "prod-1", Quantity: 0, Price: decimal.NewFromInt(10)}},
		Total:    decimal.NewFromInt(10),
	}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}

func TestCreateSale_MetodoPorDefectoEsEfectivo(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	uc, _ := nuevoSaleUC(s)

	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Products: []dto.SaleLineRequest{{ProductID: "prod-1", Quantity: 1, Price: decimal.NewFromInt(10)}},
		Total:    decimal.NewFromInt(10),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCash, out.PaymentMethod)
}

func TestUpdateSale_CamposAusentesConservanSuValor(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	uc, _ := nuevoSaleUC(s)
	out := venta(t, uc, dto.SaleLineRequest{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(10)})

	// Solo estado: total y método de pago no deben tocarse
	status := entity.SaleStatusReturned
	upd, err := uc.Update(context.Background(), out.ID, dto.UpdateSaleRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusReturned, upd.Status)
	assert.True(t, decimal.NewFromInt(20).Equal(upd.Total),
		"el total no debe cambiar si no se envía: %s", upd.Total)
	assert.Equal(t, entity.PaymentCash, upd.PaymentMethod)

	// Solo total: el estado recién puesto se conserva
	nuevoTotal := decimal.NewFromInt(25)
	upd, err = uc.Update(context.Background(), out.ID, dto.UpdateSaleRequest{Total: &nuevoTotal})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(upd.Total))
	assert.Equal(t, entity.SaleStatusReturned, upd.Status)
}

func TestUpdateSale_EstadoInvalido(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	uc, _ := nuevoSaleUC(s)
	out := venta(t, uc, dto.SaleLineRequest{ProductID: "prod-1", Quantity: 1, Price: decimal.NewFromInt(10)})

	status := "cancelada"
	_, err := uc.Update(context.Background(), out.ID, dto.UpdateSaleRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negativo := decimal.NewFromInt(-5)
	_, err = uc.Update(context.Background(), out.ID, dto.UpdateSaleRequest{Total: &negativo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteSale_ReponeElGranAlmacen(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	uc, _ := nuevoSaleUC(s)
	out := venta(t, uc, dto.SaleLineRequest{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(10)})

	require.NoError(t, uc.Delete(context.Background(), out.ID))

	assert.NotContains(t, s.sales, out.ID)
	assert.Equal(t, 22, s.products["prod-1"].Stock,
		"las unidades de la venta eliminada vuelven al gran almacén")
	assert.Equal(t, 3, s.salesStock["prod-1"], "la sala de ventas no se repone al eliminar")
}

func TestDeleteSale_Inexistente(t *testing.T) {
	s := nuevaTienda()
	uc, _ := nuevoSaleUC(s)
	assert.ErrorIs(t, uc.Delete(context.Background(), "no-existe"), domain.ErrNotFound)
}

func TestReceipt_GeneraElTicketDeLaVenta(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	uc, receipts := nuevoSaleUC(s)
	out := venta(t, uc, dto.SaleLineRequest{ProductID: "prod-1", Quantity: 1, Price: decimal.NewFromInt(10)})

	pdf, err := uc.Receipt(context.Background(), out.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, receipts.lastSale)
	assert.Equal(t, out.ID, receipts.lastSale.ID)

	_, err = uc.Receipt(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de devoluciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateReturn_QuedaPendiente(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	saleUC, _ := nuevoSaleUC(s)
	sale := venta(t, saleUC, dto.SaleLineRequest{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(10)})
	uc := nuevoReturnUC(s)

	out, err := uc.Create(context.Background(), dto.CreateReturnRequest{
		SaleID:   sale.ID,
		Products: []entity.ReturnLine{{ProductID: "prod-1", Quantity: 2}},
		Total:    decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatusPending, out.Status)
	assert.Equal(t, 20, s.products["prod-1"].Stock, "crear la solicitud no repone nada todavía")
}

func TestCreateReturn_VentaInexistente(t *testing.T) {
	s := nuevaTienda()
	uc := nuevoReturnUC(s)

	_, err := uc.Create(context.Background(), dto.CreateReturnRequest{
		SaleID:   "no-existe",
		Products: []entity.ReturnLine{{ProductID: "prod-1", Quantity: 1}},
		Total:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthorizeReturn_ReponeYMarcaLaVenta(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	saleUC, _ := nuevoSaleUC(s)
	sale := venta(t, saleUC, dto.SaleLineRequest{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(10)})
	uc := nuevoReturnUC(s)
	req, err := uc.Create(context.Background(), dto.CreateReturnRequest{
		SaleID:   sale.ID,
		Products: []entity.ReturnLine{{ProductID: "prod-1", Quantity: 2}},
		Total:    decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	s.history = nil

	out, err := uc.Authorize(context.Background(), req.ID, "admin@reinierstore.com")
	require.NoError(t, err)

	assert.Equal(t, entity.ReturnStatusAuthorized, out.Status)
	assert.Equal(t, 22, s.products["prod-1"].Stock,
		"las unidades devueltas vuelven al gran almacén, no a sala")
	assert.Equal(t, 3, s.salesStock["prod-1"])
	assert.Equal(t, entity.SaleStatusReturned, s.sales[sale.ID].Status)

	require.Len(t, s.history, 1)
	assert.Equal(t, entity.HistoryActionReturn, s.history[0].Action)
	assert.Equal(t, "admin@reinierstore.com", s.history[0].User)
}

func TestAuthorizeReturn_DobleAutorizacionEsConflicto(t *testing.T) {
	s := nuevaTienda()
	conProducto(s, "prod-1", "Limón", 20, 5)
	saleUC, _ := nuevoSaleUC(s)
	sale := venta(t, saleUC, dto.SaleLineRequest{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(10)})
	uc := nuevoReturnUC(s)
	req, err := uc.Create(context.Background(), dto.CreateReturnRequest{
		SaleID:   sale.ID,
		Products: []entity.ReturnLine{{ProductID: "prod-1", Quantity: 2}},
		Total:    decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	_, err = uc.Authorize(context.Background(), req.ID, "")
	require.NoError(t, err)
	stockTrasPrimera := s.products["prod-1"].Stock

	_, err = uc.Authorize(context.Background(), req.ID, "")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, stockTrasPrimera, s.products["prod-1"].Stock,
		"la segunda autorización no debe reponer de nuevo")
}

func TestAuthorizeReturn_SolicitudInexistente(t *testing.T) {
	s := nuevaTienda()
	uc := nuevoReturnUC(s)
	_, err := uc.Authorize(context.Background(), "no-existe", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
