// Package html boleta imprimible: la página se abre y lanza el diálogo de impresión.
package html

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/zonekids/zonekids-api/internal/application/checkout"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/pkg/money"
)

var _ checkout.VoucherHTMLRenderer = (*VoucherRenderer)(nil)

//go:embed voucher.html.tmpl
var voucherTemplate string

// VoucherRenderer arma la boleta HTML con html/template (escapa los datos del comprador).
type VoucherRenderer struct {
	tmpl *template.Template
}

// NewVoucherRenderer parsea la plantilla embebida.
func NewVoucherRenderer() (*VoucherRenderer, error) {
	tmpl, err := template.New("boleta").Funcs(template.FuncMap{
		"clp":     money.FormatCLP,
		"clpInt":  money.FormatInt,
		"payment": entity.PaymentLabel,
	}).Parse(voucherTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse plantilla boleta: %w", err)
	}
	return &VoucherRenderer{tmpl: tmpl}, nil
}

// RenderVoucherHTML ejecuta la plantilla para la orden.
func (r *VoucherRenderer) RenderVoucherHTML(_ context.Context, order *entity.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("html: orden nil")
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, order); err != nil {
		return nil, fmt.Errorf("render boleta: %w", err)
	}
	return buf.Bytes(), nil
}
