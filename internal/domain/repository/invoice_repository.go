package repository

import "github.com/tu-usuario/erp-lite/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice.
// Las facturas son inmutables: solo Create y lecturas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	ListByCompany(companyID string, limit int) ([]*entity.Invoice, error)
	CountByCompany(companyID string) (int, error)
}
