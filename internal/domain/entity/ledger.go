package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento contable.
const (
	LedgerTypeIncome  = "income"
	LedgerTypeExpense = "expense"
)

// LedgerEntry es un asiento del libro contable. Append-only: nunca se actualiza.
// El flujo de venta inserta un asiento income por factura, en la misma transacción.
type LedgerEntry struct {
	ID          string
	CompanyID   string
	Type        string // income | expense
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
}
