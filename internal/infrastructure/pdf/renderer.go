// Package pdf renderiza los documentos comerciales de una transacción con Maroto v2.
//
// Layout de la página A4, común a los seis tipos:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABECERA: tienda + NPWP         │  título + número + fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: institución + contacto                            │
//	│  CUERPO: tabla de líneas o texto del recibo                 │
//	│  TOTALES: según el tipo (impuestos, sello)                  │
//	│  FIRMAS                                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
)

var _ billing.DocumentRenderer = (*Renderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// layout describe qué secciones lleva cada tipo de documento.
type layout struct {
	title      string
	itemsTable bool
	taxes      bool // desglose de impuestos y sello
	receipt    bool // cuerpo de kwitansi (importe en letras)
	signatures [2]string
}

var layouts = map[string]layout{
	entity.DocumentTypeOrderLetter: {
		title: "SURAT PEMESANAN", itemsTable: true,
		signatures: [2]string{"Pemesan", "Penjual"},
	},
	entity.DocumentTypeInvoice: {
		title: "INVOICE", itemsTable: true, taxes: true,
		signatures: [2]string{"", "Hormat kami"},
	},
	entity.DocumentTypeReceipt: {
		title: "KWITANSI", receipt: true,
		signatures: [2]string{"", "Penerima"},
	},
	entity.DocumentTypePurchaseNote: {
		title: "NOTA PEMBELIAN", itemsTable: true, taxes: true,
		signatures: [2]string{"Pembeli", "Penjual"},
	},
	entity.DocumentTypeHandoverReport: {
		title: "BERITA ACARA SERAH TERIMA BARANG", itemsTable: true,
		signatures: [2]string{"Pihak Penerima", "Pihak Penyerah"},
	},
	entity.DocumentTypeTaxInvoice: {
		title: "FAKTUR PAJAK", itemsTable: true, taxes: true,
		signatures: [2]string{"", "Pengusaha Kena Pajak"},
	},
}

// Renderer implementa billing.DocumentRenderer produciendo PDF.
type Renderer struct{}

// NewRenderer construye el renderizador.
func NewRenderer() *Renderer { return &Renderer{} }

// ContentType tipo MIME del contenido.
func (r *Renderer) ContentType() string { return "application/pdf" }

// Extension extensión de los archivos generados.
func (r *Renderer) Extension() string { return "pdf" }

// Render genera el PDF del documento y devuelve sus bytes.
func (r *Renderer) Render(_ context.Context, d billing.DocumentData) ([]byte, error) {
	lay, ok := layouts[d.DocumentType]
	if !ok {
		return nil, fmt.Errorf("pdf: tipo de documento sin plantilla %q", d.DocumentType)
	}
	if d.Transaction == nil || d.Customer == nil || d.Store == nil {
		return nil, fmt.Errorf("pdf: faltan datos de transacción, cliente o tienda")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(lay.title+" "+d.DocumentNumber, true).
		WithAuthor(d.Store.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(lay, d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(d.Customer, d.Transaction))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if lay.itemsTable {
		m.AddRows(tableHeaderRow())
		m.AddRows(tableItemRows(d.Items)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}
	if lay.receipt {
		m.AddRows(receiptRows(d)...)
	}
	m.AddRows(totalsRows(lay, d.Transaction)...)
	m.AddRows(row.New(8))
	m.AddRows(signatureRows(lay, d)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + NPWP (izq) y título + número + fecha (der).
func headerRow(lay layout, d billing.DocumentData) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New(d.Store.StoreName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(d.Store.Address, props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(fmt.Sprintf("Telp: %s   |   Email: %s   |   NPWP: %s",
				nonEmpty(d.Store.Phone, "-"), nonEmpty(d.Store.Email, "-"), nonEmpty(d.Store.TaxID, "-"),
			), props.Text{Size: 7, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(lay.title, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("No: "+d.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
			text.New("Tanggal: "+d.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 15, Color: colorGray,
			}),
		),
	)
}

// customerRow: institución compradora y referencia de la transacción.
func customerRow(c *entity.Customer, trx *entity.Transaction) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("KEPADA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.InstitutionName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   Up. %s   |   Telp: %s",
				c.Address, nonEmpty(c.ContactPerson, "-"), nonEmpty(c.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("No. Transaksi: "+trx.Code, props.Text{Size: 7, Align: align.Right, Top: 6, Color: colorGray}),
			text.New("Tgl. Transaksi: "+trx.Date.Format("02/01/2006"), props.Text{Size: 7, Align: align.Right, Top: 10, Color: colorGray}),
			text.New("Pembayaran: "+paymentLabel(trx.PaymentMethod), props.Text{Size: 7, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("No", 1, align.Center),
		h("Kode", 2, align.Left),
		h("Nama Barang/Jasa", 3, align.Left),
		h("Qty", 1, align.Center),
		h("Harga", 2, align.Right),
		h("Diskon", 1, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func tableItemRows(items []billing.DocumentItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for i, it := range items {
		result = append(result, row.New(7).Add(
			cell(fmt.Sprintf("%d", i+1), 1, align.Center),
			cell(it.ProductCode, 2, align.Left),
			cell(it.ProductName, 3, align.Left),
			cell(formatQuantity(it.Quantity), 1, align.Center),
			cell(formatRupiah(it.UnitPrice), 2, align.Right),
			cell(formatRupiah(it.Discount), 1, align.Right),
			cell(formatRupiah(it.Subtotal), 2, align.Right),
		))
	}
	return result
}

// receiptRows: cuerpo de la kwitansi.
func receiptRows(d billing.DocumentData) []core.Row {
	trx := d.Transaction
	return []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(
			"Sudah terima dari: "+d.Customer.InstitutionName, props.Text{Size: 9, Top: 2},
		))),
		row.New(8).Add(col.New(12).Add(text.New(
			"Terbilang: "+amountInWords(trx.TotalAmount), props.Text{Style: fontstyle.Italic, Size: 9, Top: 2},
		))),
		row.New(8).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Untuk pembayaran: %d item sesuai transaksi %s", len(d.Items), trx.Code), props.Text{Size: 9, Top: 2},
		))),
	}
}

// totalsRows: bloque de totales alineado a la derecha. Las líneas de impuestos solo
// aparecen si el impuesto está activo.
func totalsRows(lay layout, trx *entity.Transaction) []core.Row {
	type entry struct {
		label string
		value string
		grand bool
	}
	entries := []entry{{label: "Subtotal", value: formatRupiah(trx.Subtotal)}}
	if lay.taxes {
		if trx.TotalDiscount.IsPositive() {
			entries = append(entries, entry{label: "Diskon", value: "-" + formatRupiah(trx.TotalDiscount)})
		}
		if trx.VATEnabled {
			entries = append(entries, entry{label: "PPN 11%", value: formatRupiah(trx.VATAmount)})
		}
		if trx.WithholdingAEnabled {
			entries = append(entries, entry{label: "PPh 22 (1,5%)", value: "-" + formatRupiah(trx.WithholdingAAmount)})
		}
		if trx.WithholdingBEnabled {
			label := "PPh 23 (2%)"
			if trx.ServiceType != "" {
				label += " " + trx.ServiceType
			}
			entries = append(entries, entry{label: label, value: "-" + formatRupiah(trx.WithholdingBAmount)})
		}
		if trx.RegionalTaxEnabled {
			entries = append(entries, entry{label: "Pajak Daerah 10%", value: formatRupiah(trx.RegionalTaxAmount)})
		}
		if trx.StampRequired {
			entries = append(entries, entry{label: "Bea Materai", value: formatRupiah(trx.StampAmount)})
		}
	}
	entries = append(entries, entry{label: "TOTAL", value: formatRupiah(trx.TotalAmount), grand: true})

	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		if e.grand {
			p = props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 1}
		}
		labelProps := p
		labelProps.Style = fontstyle.Bold
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(e.label+":", labelProps)),
			col.New(3).Add(text.New(e.value, p)),
		))
	}
	return rows
}

func signatureRows(lay layout, d billing.DocumentData) []core.Row {
	sig := func(role, name string) core.Col {
		if role == "" {
			return col.New(6)
		}
		return col.New(6).Add(
			text.New(role, props.Text{Size: 9, Align: align.Center, Top: 1}),
			text.New("( "+name+" )", props.Text{Size: 9, Align: align.Center, Top: 22}),
		)
	}
	return []core.Row{
		row.New(30).Add(
			sig(lay.signatures[0], nonEmpty(d.Customer.ContactPerson, "................")),
			sig(lay.signatures[1], d.Store.StoreName),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func paymentLabel(method string) string {
	if method == entity.PaymentMethodNonCash {
		return "Non Tunai"
	}
	return "Tunai"
}
