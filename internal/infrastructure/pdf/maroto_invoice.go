// Package pdf implementa el colaborador de exportación: convierte el snapshot
// render-ready del documento en un PDF A4 paginado usando Maroto v2.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo + Emisor           │  FACTURA + N° + Fechas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAR A: nombre + contacto del receptor                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ítem | Cant | Precio | Imp% | Total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Notas y Términos                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/base64"
	"fmt"
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
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Facturador-api/internal/application/document"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoGenerator implementa document.InvoicePDFGenerator usando Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator construye el generador.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// Generate renderiza el snapshot y devuelve los bytes del PDF.
func (g *MarotoGenerator) Generate(_ context.Context, snap *document.RenderSnapshot) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+snap.Number, true).
		WithAuthor(snap.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(snap.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(snap))

	for _, r := range notesRows(snap) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo + datos del emisor (izq) y FACTURA + número + fechas (der).
func headerRow(snap *document.RenderSnapshot) core.Row {
	left := col.New(7)

	logoBytes, logoExt, ok := decodeLogo(snap.Logo)
	if ok {
		left.Add(image.NewFromBytes(logoBytes, logoExt, props.Rect{
			Percent: 30,
			Top:     1,
		}))
	}
	left.Add(
		text.New(snap.CompanyName, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1, Left: logoLeft(ok),
		}),
		text.New(snap.CompanyAddress, props.Text{
			Size: 8, Top: 9, Left: logoLeft(ok), Color: colorGray,
		}),
		text.New("Tel: "+snap.CompanyPhone+"   |   Email: "+snap.CompanyEmail, props.Text{
			Size: 8, Top: 14, Left: logoLeft(ok), Color: colorGray,
		}),
	)

	return row.New(22).Add(
		left,
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("#"+snap.Number, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 9,
			}),
			text.New("Emisión: "+snap.Date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
			text.New("Vence: "+snap.DueDate, props.Text{
				Size: 8, Align: align.Right, Top: 18, Color: colorGray,
			}),
		),
	)
}

func logoLeft(hasLogo bool) float64 {
	if hasLogo {
		return 26
	}
	return 0
}

// clientRow: datos del receptor.
func clientRow(snap *document.RenderSnapshot) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("FACTURAR A", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(snap.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				snap.ClientAddress, snap.ClientPhone, snap.ClientEmail,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ítem", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Imp.%", 1, align.Center),
		h("Total", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea.
func tableDetailRows(lines []document.RenderLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				l.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.Quantity,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.UnitPrice,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.TaxRate,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+l.Total,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(snap *document.RenderSnapshot) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right,
		Color: colorPrimary, Right: 2, Top: 10,
	})
	grandValue := text.New("$"+snap.GrandTotal, props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right,
		Color: colorPrimary, Right: 1, Top: 10,
	})

	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			text.New("Impuestos:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5,
			}),
			grandLabel,
		),
		col.New(3).Add(
			value("$"+snap.Subtotal),
			text.New("$"+snap.TotalTax, props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 5,
			}),
			grandValue,
		),
	)
}

// notesRows: notas y términos al pie (solo si existen).
func notesRows(snap *document.RenderSnapshot) []core.Row {
	var rows []core.Row
	section := func(title, body string) {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(
				text.New(title, props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
				}),
			)),
			row.New(10).Add(col.New(12).Add(
				text.New(body, props.Text{Size: 8, Color: colorGray, Top: 1}),
			)),
		)
	}
	if snap.Notes != "" {
		section("NOTAS", snap.Notes)
	}
	if snap.Terms != "" {
		section("TÉRMINOS Y CONDICIONES", snap.Terms)
	}
	if len(rows) > 0 {
		rows = append([]core.Row{line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3})}, rows...)
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// decodeLogo extrae los bytes y la extensión de un data-URL. Formatos que
// Maroto no embebe (gif) o data-URLs malformados se saltan sin romper la
// exportación: la factura sale sin logo.
func decodeLogo(dataURL string) ([]byte, extension.Type, bool) {
	var ext extension.Type
	var rest string
	switch {
	case strings.HasPrefix(dataURL, "data:image/png;base64,"):
		ext = extension.Png
		rest = strings.TrimPrefix(dataURL, "data:image/png;base64,")
	case strings.HasPrefix(dataURL, "data:image/jpeg;base64,"):
		ext = extension.Jpg
		rest = strings.TrimPrefix(dataURL, "data:image/jpeg;base64,")
	default:
		return nil, "", false
	}
	raw, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return nil, "", false
	}
	return raw, ext, true
}
