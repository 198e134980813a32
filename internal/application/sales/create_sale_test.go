package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/erp-lite/internal/application/dto"
	"github.com/tu-usuario/erp-lite/internal/application/sales"
	"github.com/tu-usuario/erp-lite/internal/domain"
	"github.com/tu-usuario/erp-lite/internal/domain/entity"
	"github.com/tu-usuario/erp-lite/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeProductRepo repositorio de productos en memoria con el mismo clamp en
// cero que la implementación SQL.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountByCompany(companyID string) (int, error) {
	list, _ := r.ListByCompany(companyID, 0, 0)
	return len(list), nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DecrementQuantity(productID string, qty int) (int, error) {
	p, ok := r.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.Quantity -= qty
	if p.Quantity < 0 {
		p.Quantity = 0 // mismo clamp que GREATEST(quantity - qty, 0)
	}
	return p.Quantity, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

// fakeInvoiceRepo captura facturas creadas.
type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
	failWith error
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.invoices = append(r.invoices, inv)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(string) (*entity.Invoice, error) { return nil, nil }

func (r *fakeInvoiceRepo) ListByCompany(string, int) ([]*entity.Invoice, error) {
	return r.invoices, nil
}

func (r *fakeInvoiceRepo) CountByCompany(string) (int, error) { return len(r.invoices), nil }

// fakeLedgerRepo captura asientos creados.
type fakeLedgerRepo struct {
	entries []*entity.LedgerEntry
}

func (r *fakeLedgerRepo) Create(e *entity.LedgerEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeLedgerRepo) ListByCompany(string, int, int) ([]*entity.LedgerEntry, error) {
	return r.entries, nil
}

func (r *fakeLedgerRepo) SummaryByCompany(string) (*repository.LedgerSummary, error) {
	return &repository.LedgerSummary{}, nil
}

// fakeTxRunner ejecuta el callback sin transacción real. Si el callback
// falla, descarta los efectos sobre producto simulando el rollback.
type fakeTxRunner struct {
	productRepo *fakeProductRepo
	invoiceRepo *fakeInvoiceRepo
	ledgerRepo  *fakeLedgerRepo
}

func (r *fakeTxRunner) RunSale(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	backup := make(map[string]entity.Product, len(r.productRepo.products))
	for id, p := range r.productRepo.products {
		backup[id] = *p
	}
	if err := fn(r.productRepo, r.invoiceRepo, r.ledgerRepo); err != nil {
		for id := range r.productRepo.products {
			cp := backup[id]
			r.productRepo.products[id] = &cp
		}
		return err
	}
	return nil
}

func buildSaleUC(products ...*entity.Product) (*sales.CreateSaleUseCase, *fakeProductRepo, *fakeInvoiceRepo, *fakeLedgerRepo) {
	productRepo := newFakeProductRepo(products...)
	invoiceRepo := &fakeInvoiceRepo{}
	ledgerRepo := &fakeLedgerRepo{}
	runner := &fakeTxRunner{productRepo: productRepo, invoiceRepo: invoiceRepo, ledgerRepo: ledgerRepo}
	return sales.NewCreateSaleUseCase(runner, productRepo), productRepo, invoiceRepo, ledgerRepo
}

func testProduct(qty int, price string) *entity.Product {
	return &entity.Product{
		ID:        "prod-1",
		CompanyID: "co-1",
		Name:      "Teclado mecánico",
		Quantity:  qty,
		Price:     decimal.RequireFromString(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Venta normal: stock 10 − 3 = 7, monto = precio × cantidad, factura paid y
// asiento income por el mismo monto.
func TestCreateSale_DescuentaStockYCreaFacturaYAsiento(t *testing.T) {
	uc, productRepo, invoiceRepo, ledgerRepo := buildSaleUC(testProduct(10, "150.00"))

	out, err := uc.CreateSale(context.Background(), "co-1", dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  3,
	})
	require.NoError(t, err)

	require.NotNil(t, out.Product)
	assert.Equal(t, 7, out.Product.Quantity)
	p, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 7, p.Quantity)

	require.Len(t, invoiceRepo.invoices, 1)
	inv := invoiceRepo.invoices[0]
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, "Teclado mecánico", inv.ProductName)
	assert.True(t, inv.Amount.Equal(decimal.RequireFromString("450.00")), "monto = precio × cantidad")

	require.Len(t, ledgerRepo.entries, 1)
	entry := ledgerRepo.entries[0]
	assert.Equal(t, entity.LedgerTypeIncome, entry.Type)
	assert.True(t, entry.Amount.Equal(inv.Amount), "asiento income por el monto de la factura")
}

// Clamp en cero: vender 5 con stock 2 deja el stock en 0, nunca negativo.
func TestCreateSale_ClampEnCero(t *testing.T) {
	uc, productRepo, _, _ := buildSaleUC(testProduct(2, "10.00"))

	out, err := uc.CreateSale(context.Background(), "co-1", dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Product.Quantity)
	p, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 0, p.Quantity)
}

// Cantidad menor que 1 se coacciona a 1.
func TestCreateSale_CantidadPisoEnUno(t *testing.T) {
	uc, _, invoiceRepo, _ := buildSaleUC(testProduct(10, "20.00"))

	_, err := uc.CreateSale(context.Background(), "co-1", dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  0,
	})
	require.NoError(t, err)

	require.Len(t, invoiceRepo.invoices, 1)
	assert.Equal(t, 1, invoiceRepo.invoices[0].Quantity)
	assert.True(t, invoiceRepo.invoices[0].Amount.Equal(decimal.RequireFromString("20.00")))
}

// Amount explícito tiene prioridad sobre precio × cantidad.
func TestCreateSale_AmountExplicitoTienePrioridad(t *testing.T) {
	uc, _, invoiceRepo, _ := buildSaleUC(testProduct(10, "150.00"))

	_, err := uc.CreateSale(context.Background(), "co-1", dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  2,
		Amount:    decimal.RequireFromString("99.90"),
	})
	require.NoError(t, err)

	require.Len(t, invoiceRepo.invoices, 1)
	assert.True(t, invoiceRepo.invoices[0].Amount.Equal(decimal.RequireFromString("99.90")))
}

// Venta sin producto: no se toca inventario, la factura sale con el nombre
// recibido (o "Item") y el monto recibido (o 0).
func TestCreateSale_SinProductoNoTocaInventario(t *testing.T) {
	uc, _, invoiceRepo, ledgerRepo := buildSaleUC()

	out, err := uc.CreateSale(context.Background(), "co-1", dto.CreateSaleRequest{
		ProductName: "Servicio de instalación",
		Quantity:    1,
		Amount:      decimal.RequireFromString("300.00"),
	})
	require.NoError(t, err)

	assert.Nil(t, out.Product)
	require.Len(t, invoiceRepo.invoices, 1)
	assert.Equal(t, "Servicio de instalación", invoiceRepo.invoices[0].ProductName)
	require.Len(t, ledgerRepo.entries, 1)
}

// Producto inexistente → ErrNotFound; de otra empresa → ErrForbidden.
// En ambos casos no queda ningún efecto.
func TestCreateSale_ProductoInvalido(t *testing.T) {
	uc, _, invoiceRepo, ledgerRepo := buildSaleUC(testProduct(10, "10.00"))

	_, err := uc.CreateSale(context.Background(), "co-1", dto.CreateSaleRequest{ProductID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreateSale(context.Background(), "otra-empresa", dto.CreateSaleRequest{ProductID: "prod-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Empty(t, invoiceRepo.invoices)
	assert.Empty(t, ledgerRepo.entries)
}

// Si la factura falla dentro de la transacción, el descuento de stock se
// revierte: sin efectos parciales.
func TestCreateSale_FalloEnTransaccionRevierteStock(t *testing.T) {
	productRepo := newFakeProductRepo(testProduct(10, "10.00"))
	invoiceRepo := &fakeInvoiceRepo{failWith: errors.New("insert invoice: conexión perdida")}
	ledgerRepo := &fakeLedgerRepo{}
	runner := &fakeTxRunner{productRepo: productRepo, invoiceRepo: invoiceRepo, ledgerRepo: ledgerRepo}
	uc := sales.NewCreateSaleUseCase(runner, productRepo)

	_, err := uc.CreateSale(context.Background(), "co-1", dto.CreateSaleRequest{
		ProductID: "prod-1",
		Quantity:  3,
	})
	require.Error(t, err)

	p, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 10, p.Quantity, "el rollback debe restaurar el stock")
	assert.Empty(t, ledgerRepo.entries)
}

// Dos ventas secuenciales de 1 unidad sobre stock 2 terminan exactamente en 0.
// El decremento es un solo UPDATE condicional, así que el mismo par de ventas
// en paralelo tampoco perdería ninguno de los dos descuentos.
func TestCreateSale_DosVentasUnitariasTerminanEnCero(t *testing.T) {
	uc, productRepo, _, _ := buildSaleUC(testProduct(2, "10.00"))

	for i := 0; i < 2; i++ {
		_, err := uc.CreateSale(context.Background(), "co-1", dto.CreateSaleRequest{
			ProductID: "prod-1",
			Quantity:  1,
		})
		require.NoError(t, err)
	}

	p, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 0, p.Quantity)
}
