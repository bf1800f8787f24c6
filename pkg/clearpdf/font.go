package clearpdf

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
)

// ScanFontDir walks dir for .ttf and .otf files.
func ScanFontDir(dir string) ([]string, error) {
	var fonts []string

	err := filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}

		fonts = append(fonts, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

// LoadFontFamily builds the certificate font family from fontDir. A file whose
// name contains "bold" provides the bold face. When the directory yields
// nothing, the platform sans-serif font is used.
func LoadFontFamily(fontDir string) (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily("certificate")

	var regularLoaded, boldLoaded bool
	if fontDir != "" {
		fonts, err := ScanFontDir(fontDir)
		if err != nil {
			log.Printf("Skipping font dir %q: %v", fontDir, err)
		}

		for _, path := range fonts {
			name := strings.ToLower(filepath.Base(path))
			switch {
			case !boldLoaded && strings.Contains(name, "bold"):
				if err := family.LoadFontFile(path, canvas.FontBold); err == nil {
					boldLoaded = true
				}
			case !regularLoaded:
				if err := family.LoadFontFile(path, canvas.FontRegular); err == nil {
					regularLoaded = true
				}
			}
		}
	}

	if !regularLoaded {
		if err := family.LoadSystemFont("sans-serif", canvas.FontRegular); err != nil {
			return nil, err
		}
	}
	if !boldLoaded {
		// canvas synthesizes bold from the regular face if needed
		if err := family.LoadSystemFont("sans-serif", canvas.FontBold); err != nil {
			log.Printf("No bold face available, falling back to regular: %v", err)
		}
	}

	return family, nil
}
