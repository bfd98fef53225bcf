package repository

import (
	"context"

	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductWarehouseView es la vista de un producto con sus dos contadores de
// almacén, usada por la pantalla de transferencias y por el storefront.
type ProductWarehouseView struct {
	ID         string
	Name       string
	Category   string
	Image      string
	Price      decimal.Decimal
	MainStock  int // gran almacén (products.stock)
	SalesStock int // sala de ventas (almacen_ventas.stock, 0 si no hay fila)
}

// ProductRepository define el puerto de persistencia de productos.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE); usar dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdateStock(ctx context.Context, id string, stock int) error
	IncrementStock(ctx context.Context, id string, delta int) error
	// ListWarehouseView devuelve todos los productos con categoría y ambos contadores.
	ListWarehouseView(ctx context.Context) ([]ProductWarehouseView, error)
}

// CategoryRepository define el puerto de persistencia de categorías.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
}
