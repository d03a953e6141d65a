// Package pdf genera el ticket imprimible de un pedido.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  HEADER: Tienda          │ N° Pedido+Fecha │
//	│  ───────────────────────────────────────  │
//	│  CLIENTE: Nombre / Tel / DNI              │
//	│  ESTADO                                   │
//	│  ───────────────────────────────────────  │
//	│  TOTAL                                    │
//	│  ───────────────────────────────────────  │
//	│  FOOTER: QR WhatsApp + leyenda            │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/orders"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 17, Green: 24, Blue: 39}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa orders.TicketRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ orders.TicketRenderer = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// RenderTicket genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderTicket(_ context.Context, t orders.Ticket) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Pedido "+t.Number, true).
		WithAuthor(nonEmpty(t.StoreName, "Tienda"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(t))
	m.AddRows(statusRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(t)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(t orders.Ticket) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New(nonEmpty(t.StoreName, "Tienda"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(t.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(nonEmpty(t.Date, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func customerRow(t orders.Ticket) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(t.CustomerName, "Sin cliente"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   DNI: %s",
				nonEmpty(t.CustomerPhone, "—"),
				nonEmpty(t.CustomerDNI, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func statusRow(t orders.Ticket) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Estado: "+nonEmpty(t.Status, "—"), props.Text{Size: 9, Top: 2}),
		),
	)
}

func totalRow(t orders.Ticket) core.Row {
	return row.New(12).Add(
		col.New(6).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 3,
		})),
		col.New(6).Add(text.New(t.Total, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3,
		})),
	)
}

// footerRows: QR a WhatsApp del cliente cuando hay teléfono.
func footerRows(t orders.Ticket) []core.Row {
	if t.WhatsAppURL == "" {
		return []core.Row{
			row.New(10).Add(col.New(12).Add(
				text.New("Gracias por tu compra", props.Text{
					Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 3,
				}),
			)),
		}
	}
	return []core.Row{
		row.New(40).Add(
			col.New(5).Add(code.NewQr(t.WhatsAppURL, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(7).Add(
				text.New("Escanea para escribir al cliente\npor WhatsApp.", props.Text{
					Size: 8, Top: 6, Left: 3, Color: colorGray,
				}),
				text.New("Gracias por tu compra", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22, Left: 3, Color: colorPrimary,
				}),
			),
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
