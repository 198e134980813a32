package repository

import "github.com/tu-usuario/erp-lite/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	CountByCompany(companyID string) (int, error)
	Update(product *entity.Product) error
	// DecrementQuantity descuenta qty en un solo UPDATE condicional con clamp en
	// cero (GREATEST(quantity - qty, 0)) y devuelve la cantidad resultante.
	// Dos ventas concurrentes nunca pierden un decremento. Retorna ErrNotFound
	// si el producto no existe.
	DecrementQuantity(productID string, qty int) (int, error)
	Delete(id string) error
}
