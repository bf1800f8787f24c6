package clearpdf

import (
	"fmt"
	"os"
)

type Config struct {
	// Directory scanned for .ttf/.otf files. When empty or without usable
	// fonts, the renderer falls back to a system font.
	FontDir string
	// Directory where the temporary files are stored during rendering, the
	// files are deleted after rendering.
	TmpDir string
}

func NewDefaultConfig() *Config {
	cfg := Config{
		FontDir: "fonts",
		TmpDir:  fmt.Sprintf("%s/clearance/render", os.TempDir()),
	}

	if err := os.MkdirAll(cfg.TmpDir, 0755); err != nil {
		fmt.Printf("Error creating tmp directory: %v\n", err)
	}

	return &cfg
}
