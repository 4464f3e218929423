package dto

import "time"

// IssueDocumentRequest body para POST /api/transactions/:id/documents.
type IssueDocumentRequest struct {
	DocumentType string `json:"document_type" validate:"required,oneof=SURAT_PEMESANAN INVOICE KWITANSI NOTA_PEMBELIAN BAST FAKTUR_PAJAK"`
}

// DocumentResponse documento emitido.
type DocumentResponse struct {
	ID             string    `json:"id"`
	TransactionID  string    `json:"transaction_id"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	ContentRef     string    `json:"content_ref"`
	CreatedAt      time.Time `json:"created_at"`
}

// DocumentContent contenido descargable de un documento.
type DocumentContent struct {
	Filename    string
	ContentType string
	Data        []byte
}
