package invoicing

import "fmt"

// NumberPrefix prefijo de los números de factura.
const NumberPrefix = "INV-"

// FormatNumber arma el número visible a partir del consecutivo de la empresa.
// Ej: 42 → "INV-000042". Con 7 o más dígitos el consecutivo no se recorta.
func FormatNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", NumberPrefix, seq)
}
