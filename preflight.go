package main

import (
	"fmt"

	"github.com/coyove/exticons/icon"
)

// requirement is one capability the generator cannot work without.
type requirement struct {
	name    string
	install string
	check   func() error
}

type capabilityError struct {
	Name    string
	Install string
	Err     error
}

func (e *capabilityError) Error() string {
	return fmt.Sprintf("%s is not available: %v", e.Name, e.Err)
}

func (e *capabilityError) Unwrap() error {
	return e.Err
}

// requirements lists the checks for cfg. Successful checks hand what they
// loaded to g.
func requirements(cfg *Config, g *icon.Generator) []requirement {
	reqs := []requirement{
		{
			name:    fontName(cfg.Font),
			install: fontInstall(cfg.Font),
			check: func() error {
				f, err := icon.LoadFont(cfg.Font)
				if err != nil {
					return err
				}
				g.Font = f
				return nil
			},
		},
	}
	if cfg.GlyphImage != "" {
		reqs = append(reqs, requirement{
			name:    fmt.Sprintf("glyph image %q", cfg.GlyphImage),
			install: "go run ./cmd/emoji -d <emoji pack zip> -o " + cfg.GlyphImage,
			check: func() error {
				img, err := icon.LoadGlyphImage(cfg.GlyphImage)
				if err != nil {
					return err
				}
				g.GlyphImage = img
				return nil
			},
		})
	}
	if cfg.webp() {
		reqs = append(reqs, requirement{
			name:    "WebP encoder (github.com/chai2010/webp)",
			install: "CGO_ENABLED=1 go install github.com/coyove/exticons@latest",
			check: func() error {
				if !icon.WebPAvailable {
					return icon.ErrWebPUnavailable
				}
				return nil
			},
		})
	}
	return reqs
}

func fontName(path string) string {
	if path == "" {
		return "bundled font (golang.org/x/image/font/gofont)"
	}
	return fmt.Sprintf("font %q", path)
}

func fontInstall(path string) string {
	if path == "" {
		return "go get golang.org/x/image@latest && go install github.com/coyove/exticons@latest"
	}
	return "point --font at a readable .ttf, .otf or .ttc file"
}

// preflight stops at the first failing requirement.
func preflight(reqs []requirement) error {
	for _, r := range reqs {
		if err := r.check(); err != nil {
			return &capabilityError{Name: r.name, Install: r.install, Err: err}
		}
	}
	return nil
}
