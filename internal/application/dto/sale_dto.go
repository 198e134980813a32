package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada del endpoint compuesto de venta.
// ProductID es opcional: sin producto se factura ProductName/Amount tal cual.
// Amount explícito (> 0) tiene prioridad sobre precio × cantidad.
type CreateSaleRequest struct {
	CustomerID  string          `json:"customer_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	CustomerID  string          `json:"customer_id,omitempty"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	ProductID   string          `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
}

// SaleResponse factura creada + estado del producto tras el descuento de stock.
type SaleResponse struct {
	Invoice InvoiceResponse  `json:"invoice"`
	Product *ProductResponse `json:"product,omitempty"`
}

// InvoiceListResponse listado de facturas (más recientes primero).
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
}
