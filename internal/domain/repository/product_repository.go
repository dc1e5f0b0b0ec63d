package repository

import "github.com/jhoicas/Perecederos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// No hay Delete: los productos se descatalogan por estado, nunca se borran.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Product, error)
}
