package usecase

import (
	"github.com/tu-usuario/erp-lite/internal/application/dto"
	"github.com/tu-usuario/erp-lite/internal/domain/repository"
	"github.com/tu-usuario/erp-lite/pkg/currency"
)

// DashboardUseCase compone las métricas de la página principal a partir de los
// repositorios existentes (sin repositorio de analítica dedicado).
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	ledgerRepo  repository.LedgerRepository
	money       *currency.Formatter
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	ledgerRepo repository.LedgerRepository,
	money *currency.Formatter,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		ledgerRepo:  ledgerRepo,
		money:       money,
	}
}

// Metrics devuelve conteos y totales contables de la empresa.
func (uc *DashboardUseCase) Metrics(companyID string) (*dto.DashboardResponse, error) {
	products, err := uc.productRepo.CountByCompany(companyID)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.invoiceRepo.CountByCompany(companyID)
	if err != nil {
		return nil, err
	}
	sum, err := uc.ledgerRepo.SummaryByCompany(companyID)
	if err != nil {
		return nil, err
	}
	net := sum.Income.Sub(sum.Expense)
	return &dto.DashboardResponse{
		Products:     products,
		Invoices:     invoices,
		Income:       sum.Income,
		Expense:      sum.Expense,
		Net:          net,
		NetFormatted: uc.money.Format(net),
	}, nil
}
