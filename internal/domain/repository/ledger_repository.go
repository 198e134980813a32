package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
)

// LedgerSummary totales del libro contable de una empresa.
type LedgerSummary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// LedgerRepository define el puerto de persistencia para LedgerEntry (append-only).
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.LedgerEntry, error)
	SummaryByCompany(companyID string) (*LedgerSummary, error)
}
