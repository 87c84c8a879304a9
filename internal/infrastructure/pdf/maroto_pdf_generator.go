// Package pdf implementa la representación gráfica (PDF) de la factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  LOGO │ Nombre de la empresa          │  email / dirección   │
//	│  Invoice                                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  N° / fecha / vencimiento           │  Cliente: nombre, ...  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | Qty | Price | Line Total                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Tax / Discount / Total                  │
//	│  FOOTER (todas las páginas): condiciones de pago + Page N/M  │
//	└─────────────────────────────────────────────────────────────┘
//
// Si las líneas no caben, Maroto abre otra página y repite el footer.
package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	appbilling "github.com/jhoicas/invoice-generator/internal/application/billing"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// Valores por defecto del documento.
const (
	DefaultCurrencyPrefix = "Rs. "
	DefaultFooterText     = "Payment is due within 15 days. Thank you for your business."

	customFontFamily = "invoice-font"
	itemRowHeight    = 7.0
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorDark = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray = &props.Color{Red: 110, Green: 110, Blue: 110}
	colorRule = &props.Color{Red: 200, Green: 200, Blue: 200}
)

// Config recursos del generador. LogoPath es obligatorio; FontPath vacío = Helvetica integrada.
type Config struct {
	LogoPath       string
	FontPath       string
	FontBoldPath   string // vacío = se usa FontPath también para negrita
	CurrencyPrefix string
	FooterText     string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
// Los recursos se cargan una vez en el constructor; después es seguro para uso concurrente.
type MarotoPDFGenerator struct {
	logo     []byte
	logoExt  extension.Type
	fonts    []*marotoentity.CustomFont
	family   string
	currency string
	footer   string
}

// NewMarotoPDFGenerator carga logo y fuentes. Un recurso ilegible devuelve domain.ErrAsset.
func NewMarotoPDFGenerator(cfg Config) (*MarotoPDFGenerator, error) {
	g := &MarotoPDFGenerator{
		family:   fontfamily.Helvetica,
		currency: cfg.CurrencyPrefix,
		footer:   cfg.FooterText,
	}
	if g.currency == "" {
		g.currency = DefaultCurrencyPrefix
	}
	if g.footer == "" {
		g.footer = DefaultFooterText
	}

	ext, err := imageExtension(cfg.LogoPath)
	if err != nil {
		return nil, err
	}
	logo, err := os.ReadFile(cfg.LogoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: logo %s: %v", domain.ErrAsset, cfg.LogoPath, err)
	}
	if len(logo) == 0 {
		return nil, fmt.Errorf("%w: logo %s vacío", domain.ErrAsset, cfg.LogoPath)
	}
	g.logo, g.logoExt = logo, ext

	if cfg.FontPath != "" {
		fonts, err := loadFonts(cfg.FontPath, cfg.FontBoldPath)
		if err != nil {
			return nil, err
		}
		g.fonts, g.family = fonts, customFontFamily
	}
	return g, nil
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(ctx context.Context, doc entity.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Invoice == nil || doc.Company == nil || doc.Customer == nil {
		return nil, fmt.Errorf("%w: documento incompleto", domain.ErrRender)
	}

	m := maroto.New(g.config(doc.Company))
	if err := m.RegisterFooter(g.footerRow()); err != nil {
		return nil, fmt.Errorf("%w: footer: %v", domain.ErrRender, err)
	}

	view := buildView(doc.Invoice, g.currency)

	// Encabezado
	m.AddRows(g.headerRow(doc.Company))
	m.AddRows(titleRow())
	m.AddRows(line.NewRow(2, props.Line{Color: colorRule, Thickness: 0.4}))
	m.AddRows(metadataRow(view, doc.Customer))
	m.AddRows(line.NewRow(2, props.Line{Color: colorRule, Thickness: 0.4}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorRule, Thickness: 0.3}))
	m.AddRows(tableItemRows(view.Items)...)

	// Totales
	m.AddRows(line.NewRow(2, props.Line{Color: colorRule, Thickness: 0.4}))
	m.AddRows(totalsRows(view)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return out.GetBytes(), nil
}

// WriteInvoicePDF genera el PDF completo y recién entonces lo escribe en w.
func (g *MarotoPDFGenerator) WriteInvoicePDF(ctx context.Context, doc entity.InvoiceDocument, w io.Writer) error {
	b, err := g.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return nil
}

func (g *MarotoPDFGenerator) config(company *entity.Company) *marotoentity.Config {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: g.family, Size: 10, Color: colorDark}).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Family:  g.family,
			Size:    8,
			Color:   colorGray,
		}).
		WithTitle("Invoice", true).
		WithAuthor(company.Name, true)
	if len(g.fonts) > 0 {
		b = b.WithCustomFonts(g.fonts)
	}
	return b.Build()
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo, nombre de la empresa y contacto alineado a la derecha.
func (g *MarotoPDFGenerator) headerRow(company *entity.Company) core.Row {
	return row.New(24).Add(
		col.New(2).Add(image.NewFromBytes(g.logo, g.logoExt, props.Rect{Percent: 90, Center: true})),
		col.New(5).Add(text.New(company.Name, props.Text{
			Style: fontstyle.Bold, Size: 16, Top: 8, Left: 3,
		})),
		col.New(5).Add(
			text.New(company.Email, props.Text{Size: 9, Align: align.Right, Top: 6, Color: colorGray}),
			text.New(company.Address, props.Text{Size: 9, Align: align.Right, Top: 11, Color: colorGray}),
		),
	)
}

func titleRow() core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("Invoice", props.Text{Style: fontstyle.Bold, Size: 20, Top: 3}),
	))
}

// metadataRow: número y fechas (izq) junto a los datos del cliente (der).
func metadataRow(v invoiceView, customer *entity.Customer) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 10, Top: top, Color: colorGray})
	}
	return row.New(22).Add(
		col.New(3).Add(
			label("Invoice Number:", 2),
			label("Invoice Date:", 8),
			label("Due Date:", 14),
		),
		col.New(3).Add(
			text.New(v.Number, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
			text.New(v.IssueDate, props.Text{Size: 10, Top: 8}),
			text.New(v.DueDate, props.Text{Size: 10, Top: 14}),
		),
		col.New(6).Add(
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 11, Top: 2, Align: align.Right}),
			text.New(customer.Email, props.Text{Size: 9, Top: 8, Align: align.Right, Color: colorGray}),
			text.New(customer.Address, props.Text{Size: 9, Top: 14, Align: align.Right, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera en negrita de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Item", 6, align.Left),
		h("Qty", 2, align.Right),
		h("Price", 2, align.Right),
		h("Line Total", 2, align.Right),
	)
}

// tableItemRows: una fila de altura fija por línea, en el orden de la factura.
func tableItemRows(items []itemView) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 9, Align: a, Top: 1.5}))
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(itemRowHeight).Add(
			cell(it.Name, 6, align.Left),
			cell(it.Qty, 2, align.Right),
			cell(it.Price, 2, align.Right),
			cell(it.LineTotal, 2, align.Right),
		))
	}
	return rows
}

// totalsRows: Subtotal, Tax, Discount y Total (negrita) alineados a la derecha.
func totalsRows(v invoiceView) []core.Row {
	total := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 10.0
		if bold {
			style, size = fontstyle.Bold, 12
		}
		return row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{Style: style, Size: size, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right, Top: 1})),
		)
	}
	return []core.Row{
		total("Subtotal:", v.Subtotal, false),
		total(v.TaxLabel+":", v.Tax, false),
		total("Discount:", v.Discount, false),
		total("Total:", v.Total, true),
	}
}

// footerRow: condiciones de pago centradas, repetidas en cada página.
func (g *MarotoPDFGenerator) footerRow() core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(g.footer, props.Text{Size: 9, Align: align.Center, Top: 2, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func imageExtension(path string) (extension.Type, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return extension.Png, nil
	case ".jpg", ".jpeg":
		return extension.Jpg, nil
	default:
		return "", fmt.Errorf("%w: logo %q debe ser .png o .jpg", domain.ErrAsset, path)
	}
}

// loadFonts registra la fuente UTF-8 para normal y negrita.
func loadFonts(regular, bold string) ([]*marotoentity.CustomFont, error) {
	if bold == "" {
		bold = regular
	}
	for _, p := range []string{regular, bold} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("%w: fuente %s: %v", domain.ErrAsset, p, err)
		}
	}
	fonts, err := repository.New().
		AddUTF8Font(customFontFamily, fontstyle.Normal, regular).
		AddUTF8Font(customFontFamily, fontstyle.Bold, bold).
		Load()
	if err != nil {
		return nil, fmt.Errorf("%w: fuentes: %v", domain.ErrAsset, err)
	}
	return fonts, nil
}
