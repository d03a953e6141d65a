package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// maxProductImages tope de imágenes que se muestran en la ficha del producto.
const maxProductImages = 10

// Product producto del catálogo (tabla productos). Stock es un entero único, sin bodegas.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	ImageURL     string
	Images       []string
	CategoryID   *int64
	CategoryName string
	CreatedAt    time.Time
}

// Gallery devuelve hasta 10 imágenes no vacías; si no hay ninguna usa ImageURL.
func (p *Product) Gallery() []string {
	out := make([]string, 0, maxProductImages)
	for _, img := range p.Images {
		if img == "" {
			continue
		}
		out = append(out, img)
		if len(out) == maxProductImages {
			break
		}
	}
	if len(out) > 0 {
		return out
	}
	if p.ImageURL != "" {
		return []string{p.ImageURL}
	}
	return []string{}
}

// OutOfStock true cuando no quedan unidades (stock negativo incluido).
func (p *Product) OutOfStock() bool {
	return p.Stock <= 0
}
