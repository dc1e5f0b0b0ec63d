package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para registrar un producto.
type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Price           decimal.Decimal `json:"price"`
	Barcode         string          `json:"barcode" validate:"required,min=1,max=100"`
	UnitsPerPackage int             `json:"units_per_package" validate:"min=1"`
}

// UpdateProductRequest entrada para actualizar datos básicos (no el estado:
// el estado se cambia con los endpoints de ciclo de vida).
type UpdateProductRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price           *decimal.Decimal `json:"price"`
	UnitsPerPackage *int             `json:"units_per_package" validate:"omitempty,min=1"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Barcode         string          `json:"barcode"`
	UnitsPerPackage int             `json:"units_per_package"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
