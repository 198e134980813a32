package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL (usable con pool o tx).
// El libro contable es append-only: solo inserciones y lecturas.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador de persistencia para asientos contables. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persiste un nuevo asiento contable.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, company_id, type, amount, date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.CompanyID, entry.Type, entry.Amount,
		entry.Date, entry.Description, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByCompany lista los asientos de una empresa, más recientes primero.
func (r *LedgerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, company_id, type, amount, date, description, created_at
		FROM ledger_entries WHERE company_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Type, &e.Amount, &e.Date,
			&e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SummaryByCompany totaliza ingresos y gastos en una sola consulta.
// COALESCE devuelve cero cuando la empresa no tiene asientos.
func (r *LedgerRepo) SummaryByCompany(companyID string) (*repository.LedgerSummary, error) {
	query := `
		SELECT
		    COALESCE(SUM(amount) FILTER (WHERE type = 'income'),  0) AS income,
		    COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
		FROM ledger_entries WHERE company_id = $1`
	var sum repository.LedgerSummary
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(&sum.Income, &sum.Expense)
	if err != nil {
		return nil, fmt.Errorf("ledger summary: %w", err)
	}
	return &sum, nil
}
