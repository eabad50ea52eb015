package softfx

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// SavePNG writes the buffer to disk as an 8-bit PNG, creating parent
// directories as needed. Components outside [0, 1] are clamped.
func SavePNG(b *Buffer, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("capture: mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: create %s: %w", path, err)
	}
	if err := png.Encode(f, b.ToRGBA()); err != nil {
		f.Close()
		return fmt.Errorf("capture: encode %s: %w", path, err)
	}
	return f.Close()
}
