package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/erp-lite/internal/application/dto"
	"github.com/tu-usuario/erp-lite/internal/domain"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/repository"
)

// CreateSaleUseCase registra una venta: descuenta inventario, crea la factura
// pagada y el asiento income en una sola transacción. El descuento es un
// UPDATE condicional con clamp en cero, así que dos ventas concurrentes sobre
// el mismo producto nunca pierden un decremento ni dejan stock negativo.
type CreateSaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, productRepo: productRepo}
}

// CreateSale ejecuta la venta compuesta.
// Reglas de negocio:
//   - Quantity se coacciona a entero con piso en 1.
//   - Con ProductID: el producto debe existir y ser de la empresa; su nombre y
//     precio resuelven los campos de la factura.
//   - Amount explícito (> 0) tiene prioridad; si no, precio × cantidad.
//   - Sin producto resuelto no se toca inventario; la factura sale con
//     ProductName recibido (o "Item") y Amount recibido (o 0).
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, companyID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	var product *entity.Product
	if in.ProductID != "" {
		p, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if p.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		product = p
	}

	name := in.ProductName
	if product != nil {
		name = product.Name
	}
	if name == "" {
		name = "Item"
	}

	amount := in.Amount
	if !amount.GreaterThan(decimal.Zero) {
		if product != nil {
			amount = product.Price.Mul(decimal.NewFromInt(int64(qty)))
		} else {
			amount = decimal.Zero
		}
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CustomerID:  in.CustomerID,
		Date:        now,
		Amount:      amount,
		Status:      entity.InvoiceStatusPaid,
		ProductName: name,
		Quantity:    qty,
		CreatedAt:   now,
	}
	if product != nil {
		invoice.ProductID = product.ID
	}

	// Descuento + factura + asiento en una transacción: si cualquier paso
	// falla, no queda ningún efecto parcial.
	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		if product != nil {
			newQty, err := productRepo.DecrementQuantity(product.ID, qty)
			if err != nil {
				return err
			}
			product.Quantity = newQty
			product.UpdatedAt = now
		}
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		entry := &entity.LedgerEntry{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			Type:        entity.LedgerTypeIncome,
			Amount:      amount,
			Date:        now,
			Description: fmt.Sprintf("Venta: %s x%d", name, qty),
			CreatedAt:   now,
		}
		return ledgerRepo.Create(entry)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SaleResponse{Invoice: toInvoiceResponse(invoice)}
	if product != nil {
		resp.Product = &dto.ProductResponse{
			ID:          product.ID,
			CompanyID:   product.CompanyID,
			Name:        product.Name,
			Category:    product.Category,
			Quantity:    product.Quantity,
			Price:       product.Price,
			WarehouseID: product.WarehouseID,
			SupplierID:  product.SupplierID,
			CreatedAt:   product.CreatedAt,
			UpdatedAt:   product.UpdatedAt,
		}
	}
	return resp, nil
}

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
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
