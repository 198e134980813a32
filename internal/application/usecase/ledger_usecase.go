package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/erp-lite/internal/application/dto"
	"github.com/tu-usuario/erp-lite/internal/domain"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/repository"
	"github.com/tu-usuario/erp-lite/pkg/currency"
)

// LedgerUseCase casos de uso del libro contable (asientos manuales y resumen).
// Los asientos de ventas los inserta sales.CreateSaleUseCase dentro de su
// transacción; aquí solo entran asientos manuales.
type LedgerUseCase struct {
	repo  repository.LedgerRepository
	money *currency.Formatter
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(repo repository.LedgerRepository, money *currency.Formatter) *LedgerUseCase {
	return &LedgerUseCase{repo: repo, money: money}
}

// Create registra un asiento manual. Type debe ser income o expense y el
// monto no puede ser negativo.
func (uc *LedgerUseCase) Create(companyID string, in dto.CreateLedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	if in.Type != entity.LedgerTypeIncome && in.Type != entity.LedgerTypeExpense {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Type:        in.Type,
		Amount:      in.Amount,
		Date:        now,
		Description: in.Description,
		CreatedAt:   now,
	}
	if err := uc.repo.Create(entry); err != nil {
		return nil, err
	}
	return toLedgerEntryResponse(entry), nil
}

// List lista asientos de la empresa (más recientes primero).
func (uc *LedgerUseCase) List(companyID string, limit, offset int) (*dto.LedgerListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toLedgerEntryResponse(e))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Summary totales income/expense/net con montos formateados en la moneda de la app.
func (uc *LedgerUseCase) Summary(companyID string) (*dto.LedgerSummaryResponse, error) {
	sum, err := uc.repo.SummaryByCompany(companyID)
	if err != nil {
		return nil, err
	}
	net := sum.Income.Sub(sum.Expense)
	return &dto.LedgerSummaryResponse{
		Income:           sum.Income,
		Expense:          sum.Expense,
		Net:              net,
		IncomeFormatted:  uc.money.Format(sum.Income),
		ExpenseFormatted: uc.money.Format(sum.Expense),
		NetFormatted:     uc.money.Format(net),
	}, nil
}

func toLedgerEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	if e == nil {
		return nil
	}
	return &dto.LedgerEntryResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		Type:        e.Type,
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
	}
}
