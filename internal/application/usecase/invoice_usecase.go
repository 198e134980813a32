package usecase

import (
	"github.com/tu-usuario/erp-lite/internal/application/dto"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/repository"
)

// defaultInvoiceLimit máximo de facturas que lista la página de ventas.
const defaultInvoiceLimit = 50

// InvoiceUseCase lecturas de facturas. La creación vive en sales.CreateSaleUseCase.
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo}
}

// List lista las facturas de la empresa, más recientes primero.
func (uc *InvoiceUseCase) List(companyID string, limit int) (*dto.InvoiceListResponse, error) {
	if limit <= 0 || limit > defaultInvoiceLimit {
		limit = defaultInvoiceLimit
	}
	list, err := uc.repo.ListByCompany(companyID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, toInvoiceItem(inv))
	}
	return &dto.InvoiceListResponse{Items: items}, nil
}

func toInvoiceItem(inv *entity.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:          inv.ID,
		CompanyID:   inv.CompanyID,
		CustomerID:  inv.CustomerID,
		Date:        inv.Date,
		Amount:      inv.Amount,
		Status:      inv.Status,
		ProductID:   inv.ProductID,
		ProductName: inv.ProductName,
		Quantity:    inv.Quantity,
	}
}
