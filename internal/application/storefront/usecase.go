// Package storefront expone el catálogo público de la tienda.
package storefront

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/format"
)

// CatalogUseCase listado y ficha de productos.
type CatalogUseCase struct {
	products repository.ProductRepository
}

func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List devuelve una página del catálogo, opcionalmente filtrada por slug de categoría.
func (uc *CatalogUseCase) List(ctx context.Context, q dto.CatalogQuery) (*dto.CatalogResponse, error) {
	q.DefaultPage()
	products, err := uc.products.ListCatalog(ctx, repository.CatalogFilter{
		CategorySlug: format.Slugify(q.Category),
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("storefront.List: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}
	return &dto.CatalogResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// GetByRawID obtiene la ficha de un producto a partir del id de la URL.
// Un id no numérico o cero equivale a producto inexistente.
func (uc *CatalogUseCase) GetByRawID(ctx context.Context, rawID string) (*dto.ProductResponse, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.ErrNotFound
	}
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("storefront.GetByRawID: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := ToProductResponse(p)
	return &out, nil
}

// ToProductResponse convierte la entidad a la ficha pública.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           format.Slugify(p.Name),
		Description:    p.Description,
		Price:          p.Price,
		PriceFormatted: format.Currency(p.Price),
		Stock:          p.Stock,
		InStock:        !p.OutOfStock(),
		Category:       p.CategoryName,
		Images:         p.Gallery(),
	}
}
