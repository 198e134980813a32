package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/erp-lite/internal/application/dto"
	"github.com/tu-usuario/erp-lite/internal/application/usecase"
)

// InvoiceHandler expone el listado de facturas (las facturas se crean solo vía venta).
type InvoiceHandler struct {
	uc *usecase.InvoiceUseCase
}

// NewInvoiceHandler construye el handler de facturas.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// List godoc
// @Summary      Listar facturas recientes de la empresa
// @Tags         invoices
// @Produce      json
// @Param        limit  query     int  false  "máx. filas (default 50)"
// @Success      200    {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	out, err := h.uc.List(GetCompanyID(c), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
