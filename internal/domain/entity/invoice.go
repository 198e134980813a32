package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusPaid    = "paid"
	InvoiceStatusPending = "pending"
	InvoiceStatusVoid    = "void"
)

// Invoice representa una factura de venta. La crea únicamente el flujo de venta
// y es inmutable después de creada.
type Invoice struct {
	ID          string
	CompanyID   string
	CustomerID  string // opcional
	Date        time.Time
	Amount      decimal.Decimal
	Status      string
	ProductID   string // opcional
	ProductName string
	Quantity    int
	CreatedAt   time.Time
}
