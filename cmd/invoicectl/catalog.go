package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/invoice-generator/internal/application/dto"
)

// catalogRow una línea del CSV name,price,description.
type catalogRow struct {
	Line        int
	Name        string
	Price       decimal.Decimal
	Description string
}

// decoderFor devuelve el decodificador a UTF-8 del charset indicado.
// utf-8 además descarta el BOM que dejan algunas hojas de cálculo.
func decoderFor(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("charset %q no soportado (utf-8 | iso-8859-1 | windows-1252)", charset)
	}
}

// readCatalog lee el CSV del catálogo. La cabecera es opcional y se reconoce porque su
// segunda columna es "price". description puede faltar.
func readCatalog(r io.Reader, charset string) ([]catalogRow, error) {
	dec, err := decoderFor(charset)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && len(rec) >= 2 && strings.EqualFold(strings.TrimSpace(rec[1]), "price") {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos name,price", line)
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			return nil, fmt.Errorf("línea %d: name vacío", line)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: price %q inválido", line, rec[1])
		}
		row := catalogRow{Line: line, Name: name, Price: price}
		if len(rec) > 2 {
			row.Description = strings.TrimSpace(rec[2])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r catalogRow) request(companyID string) dto.CreateProductRequest {
	price := r.Price
	return dto.CreateProductRequest{
		CompanyID:   companyID,
		Name:        r.Name,
		Price:       &price,
		Description: r.Description,
	}
}
