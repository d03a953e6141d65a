package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.id, p.nombre, p.descripcion, p.precio, p.stock, p.imagen_url, p.imagenes,
	p.categoria_id, c.nombre, p.created_at`

// CountBelowStock cuenta productos con stock < threshold.
func (r *ProductRepo) CountBelowStock(ctx context.Context, threshold int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos WHERE stock < $1`, threshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("products.CountBelowStock: %w", err)
	}
	return n, nil
}

// ListBelowStock productos con stock < threshold, de menor a mayor stock.
func (r *ProductRepo) ListBelowStock(ctx context.Context, threshold int) ([]entity.Product, error) {
	query := `
		SELECT id, nombre, precio, stock, imagen_url
		FROM productos
		WHERE stock < $1
		ORDER BY stock ASC, id ASC`
	rows, err := r.q.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("products.ListBelowStock: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		var (
			p   entity.Product
			img *string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &img); err != nil {
			return nil, fmt.Errorf("products.ListBelowStock scan: %w", err)
		}
		p.ImageURL = derefString(img)
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products.ListBelowStock: %w", err)
	}
	return list, nil
}

// GetByID obtiene un producto con el nombre de su categoría; nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		WHERE p.id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("products.GetByID: %w", err)
	}
	return p, nil
}

// ListCatalog página del catálogo público, más nuevos primero.
func (r *ProductRepo) ListCatalog(ctx context.Context, f repository.CatalogFilter) ([]entity.Product, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + productColumns + `
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id`)
	if f.CategorySlug != "" {
		args = append(args, f.CategorySlug)
		sb.WriteString(fmt.Sprintf(" WHERE c.slug = $%d", len(args)))
	}
	args = append(args, f.Limit, f.Offset)
	sb.WriteString(fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("products.ListCatalog: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("products.ListCatalog scan: %w", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products.ListCatalog: %w", err)
	}
	return list, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p        entity.Product
		desc     *string
		img      *string
		category *string
	)
	if err := row.Scan(&p.ID, &p.Name, &desc, &p.Price, &p.Stock, &img, &p.Images,
		&p.CategoryID, &category, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Description = derefString(desc)
	p.ImageURL = derefString(img)
	p.CategoryName = derefString(category)
	return &p, nil
}
