package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity nunca debe quedar negativa: el decremento de ventas es un UPDATE
// condicional con clamp en cero (ver ProductRepository.DecrementQuantity).
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	Category    string
	Quantity    int
	Price       decimal.Decimal
	WarehouseID string // opcional
	SupplierID  string // opcional
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
