package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un producto. Los productos nunca se eliminan
// físicamente (conservan historial de ventas/lotes); el estado gobierna si
// participan en venta y reposición.
const (
	ProductStatusActive       = "ACTIVE"
	ProductStatusDiscontinued = "DISCONTINUED" // descatalogado
	ProductStatusPaused       = "PAUSED"       // reposición suspendida
)

// Product representa un producto perecedero del catálogo.
// Identidad inmutable; nombre, precio y estado son mutables.
type Product struct {
	ID              string
	Name            string
	Price           decimal.Decimal // precio de venta unitario
	Barcode         string          // código de barras, único
	UnitsPerPackage int             // unidades por empaque de pedido (caja, etc.)
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Discontinued indica si el producto está descatalogado (no admite nuevas recepciones).
func (p *Product) Discontinued() bool {
	return p.Status == ProductStatusDiscontinued
}

// ValidStatus valida un estado de producto.
func ValidStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusDiscontinued, ProductStatusPaused:
		return true
	}
	return false
}
