package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-generator/internal/app"
	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

func newSeedCmd(rt *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea el conjunto de datos de demostración (Acme Corporation)",
		Long: `Crea una empresa, tres clientes, cuatro productos y dos facturas.
La primera factura queda en SENT y la segunda en DRAFT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := rt.services(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := seedDemo(cmd.Context(), svc, time.Now())
			if err != nil {
				return err
			}
			rt.log.Info().
				Str("company_id", res.CompanyID).
				Int("customers", len(res.CustomerIDs)).
				Int("products", len(res.ProductIDs)).
				Strs("invoices", res.InvoiceNumbers).
				Msg("datos de demostración creados")
			fmt.Fprintf(cmd.OutOrStdout(), "company %s\n", res.CompanyID)
			for _, n := range res.InvoiceNumbers {
				fmt.Fprintf(cmd.OutOrStdout(), "invoice %s\n", n)
			}
			return nil
		},
	}
}

type seedResult struct {
	CompanyID      string
	CustomerIDs    []string
	ProductIDs     []string
	InvoiceIDs     []string
	InvoiceNumbers []string
}

// seedDemo crea los datos por los casos de uso, así pasan por las mismas validaciones que la API.
func seedDemo(ctx context.Context, svc *app.Services, now time.Time) (*seedResult, error) {
	company, err := svc.Companies.Create(ctx, dto.CreateCompanyRequest{
		Name:      "Acme Corporation",
		Address:   "123 Business Street, Suite 100, New York, NY 10001",
		Email:     "contact@acme.com",
		Phone:     "+1 (555) 123-4567",
		GSTNumber: "GST123456789",
		LogoURL:   "https://via.placeholder.com/100x100/3B82F6/FFFFFF?text=ACME",
	})
	if err != nil {
		return nil, fmt.Errorf("seed: empresa: %w", err)
	}
	res := &seedResult{CompanyID: company.ID}

	customers := []dto.CreateCustomerRequest{
		{Name: "John Smith", Email: "john.smith@email.com", Phone: "+1 (555) 234-5678", Address: "456 Customer Ave, Los Angeles, CA 90210"},
		{Name: "Sarah Johnson", Email: "sarah.johnson@email.com", Phone: "+1 (555) 345-6789", Address: "789 Client Blvd, Chicago, IL 60601"},
		{Name: "Mike Wilson", Email: "mike.wilson@email.com", Phone: "+1 (555) 456-7890", Address: "321 Business Rd, Houston, TX 77001"},
	}
	for _, in := range customers {
		in.CompanyID = company.ID
		c, err := svc.Customers.Create(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("seed: cliente %s: %w", in.Name, err)
		}
		res.CustomerIDs = append(res.CustomerIDs, c.ID)
	}

	products := []struct {
		name, description string
		price             int64
	}{
		{"Web Development Service", "Custom web development and design services", 150},
		{"Mobile App Development", "iOS and Android mobile application development", 200},
		{"Consulting Services", "Technical consulting and project management", 100},
		{"Maintenance & Support", "Ongoing maintenance and technical support", 75},
	}
	for _, p := range products {
		price := decimal.NewFromInt(p.price)
		out, err := svc.Products.Create(ctx, dto.CreateProductRequest{
			CompanyID:   company.ID,
			Name:        p.name,
			Price:       &price,
			Description: p.description,
		})
		if err != nil {
			return nil, fmt.Errorf("seed: producto %s: %w", p.name, err)
		}
		res.ProductIDs = append(res.ProductIDs, out.ID)
	}

	invoices := []struct {
		customer int
		dueIn    int
		tax      string
		discount string
		items    []dto.InvoiceItemRequest
		status   entity.InvoiceStatus
	}{
		{
			customer: 0, dueIn: 30, tax: "8.5", discount: "50",
			items: []dto.InvoiceItemRequest{
				{ProductID: res.ProductIDs[0], Qty: 10},
				{ProductID: res.ProductIDs[2], Qty: 5},
			},
			status: entity.InvoiceStatusSent,
		},
		{
			customer: 1, dueIn: 15, tax: "8.5", discount: "0",
			items: []dto.InvoiceItemRequest{
				{ProductID: res.ProductIDs[1], Qty: 3},
				{ProductID: res.ProductIDs[3], Qty: 12},
			},
			status: entity.InvoiceStatusDraft,
		},
	}
	for _, inv := range invoices {
		tax := decimal.RequireFromString(inv.tax)
		discount := decimal.RequireFromString(inv.discount)
		out, err := svc.Invoices.CreateInvoice(ctx, dto.CreateInvoiceRequest{
			CompanyID:  company.ID,
			CustomerID: res.CustomerIDs[inv.customer],
			Items:      inv.items,
			TaxRate:    &tax,
			Discount:   &discount,
			DueDate:    now.AddDate(0, 0, inv.dueIn).Format(time.DateOnly),
		})
		if err != nil {
			return nil, fmt.Errorf("seed: factura: %w", err)
		}
		if inv.status != entity.InvoiceStatusDraft {
			if _, err := svc.Invoices.UpdateStatus(ctx, out.Invoice.ID, inv.status); err != nil {
				return nil, fmt.Errorf("seed: estado de %s: %w", out.Invoice.Number, err)
			}
		}
		res.InvoiceIDs = append(res.InvoiceIDs, out.Invoice.ID)
		res.InvoiceNumbers = append(res.InvoiceNumbers, out.Invoice.Number)
	}
	return res, nil
}
