// Package icon renders the extension's placeholder icons: a purple square,
// a pink circle inset by a tenth of the size and, on the larger sizes, a white
// speech balloon in the middle.
package icon

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/corona10/goimagehash"
	"github.com/k1LoW/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/sfnt"
)

// Sizes are the icon dimensions a Chrome extension manifest asks for.
var Sizes = [...]int{16, 48, 128}

// GlyphMinSize is the smallest icon that gets a glyph.
const GlyphMinSize = 48

// Glyph is drawn in the middle of icons of at least GlyphMinSize pixels.
const Glyph = "💬"

var (
	Background = color.RGBA{138, 43, 226, 255}
	Accent     = color.RGBA{219, 112, 147, 255}
	GlyphColor = color.RGBA{255, 255, 255, 255}
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

type Spec struct {
	Size int
	Path string
}

// FileName returns the base name of the icon file for size.
func FileName(size int) string {
	return fmt.Sprintf("icon%d.png", size)
}

// Specs lists one Spec per entry of Sizes, in ascending order, inside dir.
func Specs(dir string) []Spec {
	specs := make([]Spec, 0, len(Sizes))
	for _, size := range Sizes {
		specs = append(specs, Spec{Size: size, Path: filepath.Join(dir, FileName(size))})
	}
	return specs
}

// Margin is the distance between each canvas edge and the circle's bounding box.
func Margin(size int) int {
	return size / 10
}

// CircleBounds is the bounding box of the accent circle on a size x size canvas.
func CircleBounds(size int) image.Rectangle {
	m := Margin(size)
	return image.Rect(m, m, size-m, size-m)
}

type Result struct {
	Spec Spec
	// GlyphAttempted is false for icons smaller than GlyphMinSize.
	GlyphAttempted bool
	// GlyphErr holds the reason a glyph attempt was abandoned. The icon is
	// still produced with the background and the circle only.
	GlyphErr error
	Checksum uint32
	PHash    uint64
	Bytes    int
}

// GlyphDrawn reports whether the glyph made it onto the canvas.
func (r Result) GlyphDrawn() bool {
	return r.GlyphAttempted && r.GlyphErr == nil
}

func (r Result) Record(t time.Time) Record {
	return Record{
		Size:       r.Spec.Size,
		Path:       r.Spec.Path,
		UnixTime:   t.Unix(),
		Checksum:   r.Checksum,
		PHash:      r.PHash,
		GlyphDrawn: r.GlyphDrawn(),
	}
}

type Generator struct {
	// Font renders Text. The bundled Go Regular face is used when nil.
	Font *sfnt.Font
	// GlyphImage, when set, replaces Font: its alpha channel masks a white fill.
	GlyphImage image.Image
	// Text defaults to Glyph.
	Text      string
	Antialias bool
	// WebP writes a lossless icon{size}.webp next to every PNG.
	WebP     bool
	Manifest *Manifest
	// Out receives one confirmation line per file, os.Stdout when nil.
	Out io.Writer
}

func (g *Generator) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Generator) text() string {
	if g.Text == "" {
		return Glyph
	}
	return g.Text
}

// Render draws one icon in memory. A failed glyph attempt is reported in the
// Result and leaves the canvas as background plus circle.
func (g *Generator) Render(size int) (*image.RGBA, Result) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	if g.Antialias {
		fillCircleAA(img, CircleBounds(size), Accent)
	} else {
		fillCircle(img, CircleBounds(size), Accent)
	}

	res := Result{Spec: Spec{Size: size}}
	if size >= GlyphMinSize {
		res.GlyphAttempted = true
		if err := g.drawGlyph(img, size); err != nil {
			res.GlyphErr = err
			logrus.Debugf("icon %dpx: glyph skipped: %v", size, err)
		}
	}
	return img, res
}

// Generate renders s and writes it as PNG to s.Path, replacing any existing file.
func (g *Generator) Generate(s Spec) (_ Result, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if s.Size <= 0 {
		return Result{Spec: s}, fmt.Errorf("invalid icon size: %d", s.Size)
	}

	img, res := g.Render(s.Size)
	res.Spec = s

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return res, fmt.Errorf("failed to encode %s: %w", s.Path, err)
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), filePerm); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	res.Bytes = buf.Len()
	res.Checksum = crc32.ChecksumIEEE(buf.Bytes())
	if h, err := goimagehash.PerceptionHash(img); err == nil {
		res.PHash = h.GetHash()
	} else {
		logrus.Debugf("icon %dpx: perceptual hash: %v", s.Size, err)
	}

	created := []string{s.Path}
	if g.WebP {
		p := strings.TrimSuffix(s.Path, filepath.Ext(s.Path)) + ".webp"
		if err := writeWebP(p, img); err != nil {
			return res, err
		}
		created = append(created, p)
	}

	if g.Manifest != nil {
		if err := g.Manifest.Put(res.Record(time.Now())); err != nil {
			return res, err
		}
	}

	for _, p := range created {
		fmt.Fprintf(g.out(), "Created: %s\n", p)
	}
	return res, nil
}

// Run creates dir if needed and generates every icon of Specs(dir) in order.
// It stops at the first failure.
func (g *Generator) Run(dir string) (_ []Result, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var results []Result
	for _, s := range Specs(dir) {
		res, err := g.Generate(s)
		if err != nil {
			return results, err
		}
		logrus.Infof("icon %dpx written (%d bytes, glyph=%v)", s.Size, res.Bytes, res.GlyphDrawn())
		results = append(results, res)
	}
	return results, nil
}
