package dto

import "github.com/shopspring/decimal"

// CatalogQuery filtros del catálogo público.
type CatalogQuery struct {
	PageRequest
	Category string `query:"categoria" validate:"omitempty,max=120"`
}

// ProductResponse ficha pública de un producto.
type ProductResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	PriceFormatted string          `json:"price_formatted"`
	Stock          int             `json:"stock"`
	InStock        bool            `json:"in_stock"`
	Category       string          `json:"category,omitempty"`
	Images         []string        `json:"images"`
}

// CatalogResponse listado público de productos.
type CatalogResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
