package repository

import (
	"context"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
)

// CatalogFilter filtro del listado público de productos.
type CatalogFilter struct {
	CategorySlug string
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// CountBelowStock cuenta productos con stock < threshold.
	CountBelowStock(ctx context.Context, threshold int) (int, error)
	// ListBelowStock productos con stock < threshold ordenados por stock ascendente.
	ListBelowStock(ctx context.Context, threshold int) ([]entity.Product, error)
	// GetByID obtiene un producto con su categoría; nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	ListCatalog(ctx context.Context, f CatalogFilter) ([]entity.Product, error)
}
