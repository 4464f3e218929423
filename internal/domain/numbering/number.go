// Package numbering define el formato regulatorio de los números de documento:
//
//	<PREFIJO>/<secuencia:0000>/<MM>/<YYYY>
//
// La secuencia es un contador global por tipo; mes y año salen de la fecha de emisión
// y no reinician el contador.
package numbering

import (
	"fmt"
	"time"

	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
)

var prefixes = map[string]string{
	entity.DocumentTypeOrderLetter:    "SP",
	entity.DocumentTypeInvoice:        "INV",
	entity.DocumentTypeReceipt:        "KWT",
	entity.DocumentTypePurchaseNote:   "NP",
	entity.DocumentTypeHandoverReport: "BAST",
	entity.DocumentTypeTaxInvoice:     "FP",
}

// Prefix devuelve el prefijo del tipo de documento.
func Prefix(documentType string) (string, bool) {
	p, ok := prefixes[documentType]
	return p, ok
}

// Format arma el número visible. seq debe ser >= 1.
func Format(documentType string, seq int64, issuedAt time.Time) (string, error) {
	prefix, ok := Prefix(documentType)
	if !ok {
		return "", domain.Invalid("tipo de documento desconocido %q", documentType)
	}
	if seq < 1 {
		return "", domain.Invalid("secuencia fuera de rango: %d", seq)
	}
	return fmt.Sprintf("%s/%04d/%02d/%04d", prefix, seq, int(issuedAt.Month()), issuedAt.Year()), nil
}
