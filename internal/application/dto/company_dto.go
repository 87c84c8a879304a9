package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Address   string `json:"address"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	GSTNumber string `json:"gst_number" validate:"max=30"`
	LogoURL   string `json:"logo_url"`
}

// UpdateCompanyRequest entrada para PUT /api/companies/:id.
// Sobrescribe todos los campos mutables: un campo omitido queda vacío.
type UpdateCompanyRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Address   string `json:"address"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	GSTNumber string `json:"gst_number" validate:"max=30"`
	LogoURL   string `json:"logo_url"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	GSTNumber string    `json:"gst_number"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
