package entity

import "time"

// Customer representa un cliente de una empresa. CompanyID no cambia después de creado.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
