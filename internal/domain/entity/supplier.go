package entity

import "time"

// Supplier representa un proveedor de la empresa.
type Supplier struct {
	ID          string
	CompanyID   string
	Name        string
	ContactInfo string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
