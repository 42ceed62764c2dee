//go:build !cgo

package icon

import (
	"image"
	"io"
)

// WebPAvailable reports whether WebP sidecars can be written.
const WebPAvailable = false

func encodeWebP(w io.Writer, img image.Image) error {
	return ErrWebPUnavailable
}
