// Package receipt renders the QR code printed on order receipts.
package receipt

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// QRGenerator encodes the tracking URL of an order as a PNG.
type QRGenerator struct {
	BaseURL string
	Size    int
}

func NewQRGenerator(baseURL string) *QRGenerator {
	return &QRGenerator{BaseURL: strings.TrimRight(baseURL, "/"), Size: 256}
}

// TrackingURL is the customer page for an order.
func (g *QRGenerator) TrackingURL(orderID uuid.UUID) string {
	return fmt.Sprintf("%s/orders/%s", g.BaseURL, orderID)
}

func (g *QRGenerator) Generate(orderID uuid.UUID) ([]byte, error) {
	png, err := qrcode.Encode(g.TrackingURL(orderID), qrcode.Medium, g.Size)
	if err != nil {
		return nil, fmt.Errorf("encode receipt qr: %w", err)
	}
	return png, nil
}
