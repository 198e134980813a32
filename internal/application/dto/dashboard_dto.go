package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas agregadas de la empresa para la página principal.
type DashboardResponse struct {
	Products     int             `json:"products"`
	Invoices     int             `json:"invoices"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Net          decimal.Decimal `json:"net"`
	NetFormatted string          `json:"net_formatted"`
}
