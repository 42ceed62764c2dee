package icon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ErrGlyphUnsupported is wrapped by glyph errors caused by the font or bitmap
// not being able to represent the requested text.
var ErrGlyphUnsupported = errors.New("glyph not supported")

// kappa places cubic control points so four arcs approximate a circle.
const kappa = 0.5522847498

var bundled struct {
	once sync.Once
	font *sfnt.Font
	err  error
}

// BundledFont is Go Regular. It has no emoji, so the default glyph is skipped
// unless another font or a glyph bitmap is configured.
func BundledFont() (*sfnt.Font, error) {
	bundled.once.Do(func() {
		bundled.font, bundled.err = opentype.Parse(goregular.TTF)
	})
	return bundled.font, bundled.err
}

// LoadFont parses a TrueType/OpenType file or the first face of a collection.
// An empty path returns BundledFont.
func LoadFont(path string) (*sfnt.Font, error) {
	if path == "" {
		return BundledFont()
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(buf)
	if err == nil {
		return f, nil
	}
	c, cerr := opentype.ParseCollection(buf)
	if cerr != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return c.Font(0)
}

// LoadGlyphImage decodes a PNG, JPEG or GIF used as the glyph mask.
func LoadGlyphImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode glyph image %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("glyph image %s is empty", path)
	}
	return img, nil
}

// fillCircle sets every pixel whose center lies inside the ellipse inscribed
// in r. Coordinates are doubled so the test stays in integers.
func fillCircle(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	sx, sy := int64(r.Min.X+r.Max.X), int64(r.Min.Y+r.Max.Y)
	w2, h2 := int64(r.Dx())*int64(r.Dx()), int64(r.Dy())*int64(r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dy := int64(2*y+1) - sy
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := int64(2*x+1) - sx
			if dx*dx*h2+dy*dy*w2 <= w2*h2 {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}

// fillCircleAA rasterizes the same ellipse with coverage based anti-aliasing.
// The curve stays inside r, so pixels outside r are untouched.
func fillCircleAA(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	cx, cy := float32(r.Min.X+r.Max.X)/2, float32(r.Min.Y+r.Max.Y)/2
	rx, ry := float32(r.Dx())/2, float32(r.Dy())/2
	kx, ky := kappa*rx, kappa*ry

	b := dst.Bounds()
	var z vector.Rasterizer
	z.Reset(b.Dx(), b.Dy())
	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func (g *Generator) drawGlyph(dst *image.RGBA, size int) error {
	if g.GlyphImage != nil {
		return drawGlyphImage(dst, g.GlyphImage, size)
	}
	f := g.Font
	if f == nil {
		var err error
		if f, err = BundledFont(); err != nil {
			return err
		}
	}
	return drawGlyphText(dst, f, g.text(), size)
}

// drawGlyphText centers text on dst using a face of size/2 points, anchored
// at the middle of its advance and between ascent and descent. Every rune is
// checked before anything is drawn, so a failure leaves dst untouched.
func drawGlyphText(dst *image.RGBA, f *sfnt.Font, text string, size int) error {
	text = strings.Map(func(r rune) rune {
		if noDrawRune(r) {
			return -1
		}
		return r
	}, text)
	if text == "" {
		return fmt.Errorf("%w: nothing to draw", ErrGlyphUnsupported)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size / 2),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer face.Close()

	var buf sfnt.Buffer
	for _, r := range text {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return err
		}
		if idx == 0 {
			return fmt.Errorf("%w: no glyph for %U", ErrGlyphUnsupported, r)
		}
		// Bitmap-only glyphs (color emoji fonts) have an index but no outline.
		if _, _, _, _, ok := face.Glyph(fixed.Point26_6{}, r); !ok {
			return fmt.Errorf("%w: no outline for %U", ErrGlyphUnsupported, r)
		}
	}

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(GlyphColor), Face: face}
	m := face.Metrics()
	d.Dot.X = fixed.I(size/2) - d.MeasureString(text)/2
	d.Dot.Y = fixed.I(size/2) + (m.Ascent-m.Descent)/2
	d.DrawString(text)
	return nil
}

// drawGlyphImage scales src to half the icon and uses its alpha as the mask
// of a white fill centered on dst.
func drawGlyphImage(dst *image.RGBA, src image.Image, size int) error {
	dim := size / 2
	if dim == 0 || src.Bounds().Empty() {
		return fmt.Errorf("%w: empty glyph image", ErrGlyphUnsupported)
	}
	mask := resize.Resize(uint(dim), uint(dim), src, resize.Bicubic)
	off := (size - dim) / 2
	r := image.Rect(off, off, off+dim, off+dim)
	draw.DrawMask(dst, r, image.NewUniform(GlyphColor), image.Point{}, mask, mask.Bounds().Min, draw.Over)
	return nil
}

// noDrawRune reports runes that only modify their neighbours: carriage
// returns, zero width joiners and variation selectors.
func noDrawRune(r rune) bool {
	return r == '\r' || r == 0x200D || (0xFE00 <= r && r <= 0xFE0F)
}
