package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
// Las facturas son inmutables: no hay Update ni Delete.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, customer_id, date, amount, status, product_id, product_name, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, nullIfEmpty(invoice.CustomerID),
		invoice.Date, invoice.Amount, invoice.Status,
		nullIfEmpty(invoice.ProductID), invoice.ProductName, invoice.Quantity,
		invoice.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, company_id, COALESCE(customer_id::TEXT, ''), date, amount, status,
		       COALESCE(product_id::TEXT, ''), product_name, quantity, created_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Date, &inv.Amount, &inv.Status,
		&inv.ProductID, &inv.ProductName, &inv.Quantity, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// ListByCompany lista las facturas más recientes de una empresa.
func (r *InvoiceRepo) ListByCompany(companyID string, limit int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, company_id, COALESCE(customer_id::TEXT, ''), date, amount, status,
		       COALESCE(product_id::TEXT, ''), product_name, quantity, created_at
		FROM invoices WHERE company_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Date, &inv.Amount,
			&inv.Status, &inv.ProductID, &inv.ProductName, &inv.Quantity, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// CountByCompany cuenta las facturas de una empresa.
func (r *InvoiceRepo) CountByCompany(companyID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE company_id = $1`, companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return count, nil
}
