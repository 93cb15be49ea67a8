package checkout

import (
	"context"
	"fmt"
)

// VoucherUseCase boleta de una orden en PDF o en HTML imprimible.
type VoucherUseCase struct {
	orders *OrderUseCase
	pdf    VoucherPDFGenerator
	html   VoucherHTMLRenderer
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(orders *OrderUseCase, pdf VoucherPDFGenerator, html VoucherHTMLRenderer) *VoucherUseCase {
	return &VoucherUseCase{orders: orders, pdf: pdf, html: html}
}

// PDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *VoucherUseCase) PDF(ctx context.Context, userID, role, orderID string) ([]byte, string, error) {
	o, err := uc.orders.load(ctx, userID, role, orderID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateVoucherPDF(ctx, o)
	if err != nil {
		return nil, "", fmt.Errorf("boleta pdf: %w", err)
	}
	return b, fmt.Sprintf("boleta-%s.pdf", o.Number), nil
}

// HTML devuelve la boleta como página imprimible.
func (uc *VoucherUseCase) HTML(ctx context.Context, userID, role, orderID string) ([]byte, error) {
	o, err := uc.orders.load(ctx, userID, role, orderID)
	if err != nil {
		return nil, err
	}
	b, err := uc.html.RenderVoucherHTML(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("boleta html: %w", err)
	}
	return b, nil
}
