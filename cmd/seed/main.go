// seed puebla la base de datos con los usuarios iniciales y un catálogo de
// demostración: categorías, productos, monedas y una oferta vigente.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/infrastructure/postgres"
	"github.com/reinierstore/store-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seedUsers(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "usuarios: %v\n", err)
		os.Exit(1)
	}
	if err := seedCurrencies(ctx, pool, cfg.Exchange.Base); err != nil {
		fmt.Fprintf(os.Stderr, "monedas: %v\n", err)
		os.Exit(1)
	}
	if err := seedCatalog(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "catálogo: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("base de datos poblada")
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	users := postgres.NewUserRepository(pool)
	seedData := []struct {
		email, password, name, role string
	}{
		{"admin@reinierstore.com", "admin1234", "Administrador", entity.RoleAdmin},
		{"empleado@reinierstore.com", "empleado1234", "Empleado de sala", entity.RoleEmployee},
	}
	for _, s := range seedData {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash de %s: %w", s.email, err)
		}
		err = users.Create(ctx, &entity.User{
			ID:           uuid.New().String(),
			Email:        s.email,
			PasswordHash: string(hash),
			Name:         s.name,
			Role:         s.role,
			CreatedAt:    time.Now(),
		})
		if err != nil && err != domain.ErrDuplicate {
			return fmt.Errorf("crear %s: %w", s.email, err)
		}
	}
	return nil
}

func seedCurrencies(ctx context.Context, pool *pgxpool.Pool, base string) error {
	type row struct {
		code, name, symbol string
		rate               string
		isDefault          bool
	}
	rows := []row{
		{base, "Peso cubano", "$", "1", true},
		{"USD", "Dólar estadounidense", "US$", "0.0083", false},
		{"EUR", "Euro", "€", "0.0077", false},
	}
	for _, r := range rows {
		rate, err := decimal.NewFromString(r.rate)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO currencies (code, name, symbol, exchange_rate, is_default, updated_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (code) DO NOTHING`,
			r.code, r.name, r.symbol, rate, r.isDefault,
		)
		if err != nil {
			return fmt.Errorf("moneda %s: %w", r.code, err)
		}
	}
	return nil
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)
	offers := postgres.NewOfferRepository(pool)

	type productSeed struct {
		name, image, price string
		stock              int
	}
	catalogData := map[string][]productSeed{
		"Frutas": {
			{"Limón", "/images/limon.jpg", "25.00", 40},
			{"Mango", "/images/mango.jpg", "60.00", 25},
		},
		"Bebidas": {
			{"Refresco de cola", "/images/refresco.jpg", "120.00", 60},
			{"Agua mineral", "/images/agua.jpg", "80.00", 100},
		},
		"Limpieza": {
			{"Detergente líquido", "/images/detergente.jpg", "350.00", 30},
		},
	}

	var firstProductID string
	for categoryName, items := range catalogData {
		category := &entity.Category{ID: uuid.New().String(), Name: categoryName}
		if err := categories.Create(ctx, category); err != nil && err != domain.ErrDuplicate {
			return fmt.Errorf("categoría %s: %w", categoryName, err)
		}
		for _, item := range items {
			price, err := decimal.NewFromString(item.price)
			if err != nil {
				return err
			}
			now := time.Now()
			p := &entity.Product{
				ID:         uuid.New().String(),
				CategoryID: category.ID,
				Name:       item.name,
				Image:      item.image,
				Price:      price,
				Stock:      item.stock,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := products.Create(ctx, p); err != nil {
				if err == domain.ErrDuplicate {
					continue
				}
				return fmt.Errorf("producto %s: %w", item.name, err)
			}
			if firstProductID == "" {
				firstProductID = p.ID
			}
		}
	}

	// Una oferta vigente de una semana para el slider del storefront
	if firstProductID != "" {
		now := time.Now()
		err := offers.Create(ctx, &entity.Offer{
			ID:          uuid.New().String(),
			ProductID:   firstProductID,
			Title:       "Oferta de la semana",
			DiscountPct: decimal.NewFromInt(15),
			StartsAt:    now,
			EndsAt:      now.AddDate(0, 0, 7),
		})
		if err != nil && err != domain.ErrDuplicate {
			return fmt.Errorf("oferta: %w", err)
		}
	}
	return nil
}
