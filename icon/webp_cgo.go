//go:build cgo

package icon

import (
	"image"
	"io"

	"github.com/chai2010/webp"
)

// WebPAvailable reports whether WebP sidecars can be written.
const WebPAvailable = true

func encodeWebP(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: true})
}
