package clearpdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

/*
 * Attention: tdewolff/canvas uses mm as the unit of measurement. The page
 * geometry below is US letter with 72pt left/right/top margins and an 18pt
 * bottom margin, converted to mm.
 */

const (
	letterWidthMM  = 215.9
	letterHeightMM = 279.4
	marginMM       = 25.4
	bottomMarginMM = 6.35
)

const certificateTitle = "STUDENT CLEARANCE CERTIFICATE"

// Certificate is the immutable snapshot handed to the renderer. The renderer
// never consults live user rows; name and number were denormalized at
// submission time.
type Certificate struct {
	StudentName           string
	StudentNumber         string
	ReferenceNumber       string
	SubmittedAt           time.Time
	CompletedRequirements []string
	// Local path of the signature template image; empty means no signature
	// region is drawn.
	SignatureFilePath string
	// Link encoded into the verification QR code; empty skips the QR.
	VerifyURL string
}

type Renderer struct {
	cfg    *Config
	family *canvas.FontFamily
}

func NewRenderer(cfg *Config) (*Renderer, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}

	family, err := LoadFontFamily(cfg.FontDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate fonts: %w", err)
	}

	return &Renderer{cfg: cfg, family: family}, nil
}

// LabeledLines returns the "Label: value" lines printed under the title, in
// print order.
func LabeledLines(cert Certificate) []string {
	return []string{
		fmt.Sprintf("Name: %s", cert.StudentName),
		fmt.Sprintf("Student Number: %s", cert.StudentNumber),
		fmt.Sprintf("Date Submitted: %s", cert.SubmittedAt.UTC().Format("2006-01-02 15:04:05")),
	}
}

// BulletLines renders the completed requirements in their stored order. The
// order is part of the snapshot and must not be re-sorted here.
func BulletLines(requirements []string) []string {
	lines := make([]string, 0, len(requirements))
	for _, name := range requirements {
		lines = append(lines, "• "+name)
	}
	return lines
}

// Render produces the single-page certificate PDF as bytes. The text layer is
// laid out with canvas; the signature template and the verification QR are
// stamped on afterwards as watermarks.
func (r *Renderer) Render(cert Certificate) ([]byte, error) {
	if err := os.MkdirAll(r.cfg.TmpDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create tmp directory: %w", err)
	}
	tmpDir, err := os.MkdirTemp(r.cfg.TmpDir, "cert_")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	basePdf := filepath.Join(tmpDir, "base.pdf")
	if err := r.renderTextLayer(cert, basePdf); err != nil {
		return nil, err
	}

	currentFile := basePdf

	if cert.SignatureFilePath != "" {
		withSig := filepath.Join(tmpDir, "signed.pdf")
		// just above the signature line drawn by the text layer
		if err := ApplySignatureToPdf(currentFile, withSig, cert.SignatureFilePath, 72, 120, 0.18); err != nil {
			return nil, fmt.Errorf("failed to apply signature template: %w", err)
		}
		currentFile = withSig
	}

	if cert.VerifyURL != "" {
		qrFile := filepath.Join(tmpDir, "qr.png")
		if err := GenerateQRCode(cert.VerifyURL, qrFile, 50); err != nil {
			return nil, err
		}

		withQr := filepath.Join(tmpDir, "final.pdf")
		if err := EmbedQRCodeToPdf(currentFile, withQr, qrFile); err != nil {
			return nil, err
		}
		currentFile = withQr
	}

	return os.ReadFile(currentFile)
}

func (r *Renderer) renderTextLayer(cert Certificate, output string) error {
	c := canvas.New(letterWidthMM, letterHeightMM)
	ctx := canvas.NewContext(c)
	// Change coordination from bottom-left to top-left
	ctx.SetCoordSystem(canvas.CartesianIV)

	titleFace := r.family.Face(18, canvas.Black, canvas.FontBold, canvas.FontNormal)
	labelFace := r.family.Face(12, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	headingFace := r.family.Face(12, canvas.Black, canvas.FontBold, canvas.FontNormal)
	listFace := r.family.Face(11, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	footerFace := r.family.Face(8, canvas.Black, canvas.FontRegular, canvas.FontNormal)

	y := marginMM

	ctx.DrawText(letterWidthMM/2, y, canvas.NewTextLine(titleFace, certificateTitle, canvas.Center))
	y += 16

	for _, line := range LabeledLines(cert) {
		ctx.DrawText(marginMM, y, canvas.NewTextLine(labelFace, line, canvas.Left))
		y += 8
	}
	y += 6

	ctx.DrawText(marginMM, y, canvas.NewTextLine(headingFace, "Completed Requirements:", canvas.Left))
	y += 9

	for _, line := range BulletLines(cert.CompletedRequirements) {
		ctx.DrawText(marginMM+4, y, canvas.NewTextLine(listFace, line, canvas.Left))
		y += 7
	}

	if cert.SignatureFilePath != "" {
		lineY := letterHeightMM - 38.0
		ctx.SetStrokeColor(canvas.Black)
		ctx.SetStrokeWidth(0.4)
		ctx.MoveTo(marginMM, lineY)
		ctx.LineTo(marginMM+65, lineY)
		ctx.Stroke()
		ctx.DrawText(marginMM, lineY+5, canvas.NewTextLine(labelFace, "Authorized Signature", canvas.Left))
	}

	footer := fmt.Sprintf("Reference No: %s", cert.ReferenceNumber)
	ctx.DrawText(marginMM, letterHeightMM-bottomMarginMM-3, canvas.NewTextLine(footerFace, footer, canvas.Left))

	if err := renderers.Write(output, c); err != nil {
		return fmt.Errorf("failed to write PDF: %v", err)
	}

	return nil
}
