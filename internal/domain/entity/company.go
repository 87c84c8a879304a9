package entity

import "time"

// Company representa una empresa emisora de facturas (tenant).
type Company struct {
	ID        string
	Name      string
	Address   string
	Email     string
	Phone     string
	GSTNumber string // identificador tributario (GST/NIT)
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
