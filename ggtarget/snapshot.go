package ggtarget

import (
	"fmt"
	"os"
	"path/filepath"
)

// SavePNG writes the context's current image to path, creating the parent
// directory if needed. Layers still open are not included.
func (t *Target) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
		}
	}
	if err := t.dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
