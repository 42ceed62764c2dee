package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/coyove/exticons/icon"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const DIM = 64

func main() {
	var p, text, out string
	flag.StringVar(&p, "f", "", "font file, bundled Go Regular when empty")
	flag.StringVar(&text, "t", icon.Glyph, "runes to probe")
	flag.StringVar(&out, "o", "", "directory for preview PNGs")
	flag.Parse()

	buf := goregular.TTF
	if p != "" {
		var err error
		if buf, err = os.ReadFile(p); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	f, err := truetype.Parse(buf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	missing := 0
	for _, r := range text {
		if f.Index(r) == 0 {
			fmt.Printf("%U %q\tmissing\n", r, r)
			missing++
			continue
		}
		fmt.Printf("%U %q\tok\n", r, r)
		if out == "" {
			continue
		}
		if err := preview(f, r, filepath.Join(out, fmt.Sprintf("%x.png", r))); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if missing > 0 {
		os.Exit(1)
	}
}

// preview draws r in white on the icon background, the way it would appear
// on the largest icon.
func preview(f *truetype.Font, r rune, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    DIM / 2,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, DIM, DIM))
	draw.Draw(img, img.Bounds(), image.NewUniform(icon.Background), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: img, Src: image.NewUniform(icon.GlyphColor), Face: face}
	m := face.Metrics()
	d.Dot.X = fixed.I(DIM/2) - d.MeasureString(string(r))/2
	d.Dot.Y = fixed.I(DIM/2) + (m.Ascent-m.Descent)/2
	d.DrawString(string(r))

	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
