package entity

import "time"

// Tipos de documento imprimible asociados a una transacción.
const (
	DocumentTypeOrderLetter    = "SURAT_PEMESANAN" // carta de pedido
	DocumentTypeInvoice        = "INVOICE"
	DocumentTypeReceipt        = "KWITANSI"       // recibo
	DocumentTypePurchaseNote   = "NOTA_PEMBELIAN" // nota de compra
	DocumentTypeHandoverReport = "BAST"           // acta de entrega de bienes
	DocumentTypeTaxInvoice     = "FAKTUR_PAJAK"   // factura fiscal
)

// DocumentTypes lista los seis tipos en orden estable.
var DocumentTypes = []string{
	DocumentTypeOrderLetter,
	DocumentTypeInvoice,
	DocumentTypeReceipt,
	DocumentTypePurchaseNote,
	DocumentTypeHandoverReport,
	DocumentTypeTaxInvoice,
}

// ValidDocumentType indica si t es uno de los seis tipos.
func ValidDocumentType(t string) bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// Document registro de un documento generado. Nunca se actualiza.
type Document struct {
	ID            string
	TransactionID string // id interno de la transacción
	Type          string
	Number        string // único dentro de su tipo, ej. INV/0001/03/2025
	ContentRef    string // referencia opaca al contenido renderizado
	CreatedAt     time.Time
}
