package icon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
)

// ErrWebPUnavailable is returned when the binary was built without cgo.
var ErrWebPUnavailable = errors.New("webp encoder not compiled in (requires cgo)")

func writeWebP(path string, img image.Image) error {
	buf := &bytes.Buffer{}
	if err := encodeWebP(buf, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
