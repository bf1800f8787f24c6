package clearpdf

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Size 50 is enough for a verification QR stamped on a PDF page.
func GenerateQRCode(link, outputPath string, size int) error {
	err := qrcode.WriteFile(link, qrcode.Medium, size, outputPath)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	return nil
}
