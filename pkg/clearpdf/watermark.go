package clearpdf

import (
	"fmt"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Stamp an image (signature template) onto a PDF file. The anchor is the
// bottom-left corner; offsets are in points. The image is scaled relative to
// the page so oversized uploads stay inside the signature region.
func ApplySignatureToPdf(inFile, outFile, signatureFile string, offX, offY, scale float64) error {
	ext := filepath.Ext(signatureFile)
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return fmt.Errorf("unsupported signature file type: %s", ext)
	}

	description := fmt.Sprintf("pos: bl, off: %.1f %.1f, scale: %.2f rel, rotation: 0", offX, offY, scale)
	onTop := true

	return api.AddImageWatermarksFile(inFile, outFile, nil, onTop, signatureFile, description, nil)
}

// Apply qr code to the bottom right corner of a PDF file.
func EmbedQRCodeToPdf(inFile, outFile, qrCodePath string) error {
	description := "pos: br, off: -18 18, scale: 1 abs, rotation: 0"
	err := api.AddImageWatermarksFile(inFile, outFile, nil, true, qrCodePath, description, nil)
	if err != nil {
		return fmt.Errorf("failed to embed QR code in PDF: %w", err)
	}
	return nil
}
