package entity

import "time"

// Customer representa un cliente de la empresa (ventas/CRM).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
