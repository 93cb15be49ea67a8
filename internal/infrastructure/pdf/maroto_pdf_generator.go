// Package pdf genera la boleta de compra de ZoneKids.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: ZoneKids            │  N° Boleta + Fecha + Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPRADOR: Nombre / RUT / Email / Dirección / Pago          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / Descuento / Envío / TOTAL         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el N° de boleta + agradecimiento             │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/zonekids/zonekids-api/internal/application/checkout"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/pkg/money"
)

var _ checkout.VoucherPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 233, Green: 84, Blue: 140}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// StoreName nombre impreso en la cabecera de la boleta.
const StoreName = "ZoneKids"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa checkout.VoucherPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateVoucherPDF genera la boleta y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateVoucherPDF(_ context.Context, order *entity.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: orden nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Boleta "+order.Number, true).
		WithAuthor(StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(buyerRow(order.Buyer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(order.Details)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(order *entity.Order) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(StoreName, props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New("Ropa infantil", props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("BOLETA DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(order.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
			text.New(order.StatusLabel(), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 16,
			}),
		),
	)
}

func buyerRow(b entity.Buyer) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("DATOS DEL COMPRADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(b.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("RUT: %s   |   Email: %s", b.RUT, b.Email), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Pago: %s", b.Address, entity.PaymentLabel(b.Payment)), props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(details []entity.OrderDetail) []core.Row {
	result := make([]core.Row, 0, len(details))
	for _, d := range details {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", d.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(d.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.FormatInt(d.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money.FormatInt(d.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow bloque de totales alineado a la derecha. Descuento y cupón solo si aplican.
func totalsRow(order *entity.Order) core.Row {
	type entry struct{ label, value string }
	entries := []entry{
		{"Subtotal:", money.FormatCLP(order.Subtotal)},
		{"IVA:", money.FormatCLP(order.IVA)},
		{"Subtotal con IVA:", money.FormatCLP(order.SubtotalWithIVA)},
	}
	if order.Discount.IsPositive() {
		entries = append(entries, entry{
			fmt.Sprintf("Descuento (%s%%):", order.DiscountPercent.StringFixed(0)),
			"-" + money.FormatCLP(order.Discount),
		})
	}
	shipping := money.FormatCLP(order.Shipping)
	if order.FreeShipping {
		shipping = "Gratis"
	}
	entries = append(entries, entry{"Envío:", shipping})
	if order.CouponCode != "" {
		entries = append(entries, entry{"Cupón:", order.CouponCode})
	}

	labels := col.New(3)
	values := col.New(3)
	for i, e := range entries {
		top := float64(i * 5)
		labels.Add(text.New(e.label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values.Add(text.New(e.value, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	top := float64(len(entries)*5 + 1)
	labels.Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 2, Top: top}))
	values.Add(text.New(money.FormatCLP(order.Total), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 1, Top: top}))

	return row.New(top+8).Add(col.New(6), labels, values)
}

// footerRow QR con el número de boleta para buscarla en tienda.
func footerRow(order *entity.Order) core.Row {
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(order.Number, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("¡Gracias por comprar en "+StoreName+"!", props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6, Left: 3, Color: colorPrimary,
			}),
			text.New("Presenta este código para cambios o devoluciones dentro de 30 días.", props.Text{
				Size: 8, Top: 16, Left: 3, Color: colorGray,
			}),
		),
	)
}
