package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest entrada para crear un asiento manual.
type CreateLedgerEntryRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description"`
}

// LedgerEntryResponse salida de un asiento.
type LedgerEntryResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// LedgerListResponse listado paginado de asientos.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// LedgerSummaryResponse totales del libro (para la página de finanzas).
type LedgerSummaryResponse struct {
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Net              decimal.Decimal `json:"net"`
	IncomeFormatted  string          `json:"income_formatted"`
	ExpenseFormatted string          `json:"expense_formatted"`
	NetFormatted     string          `json:"net_formatted"`
}
