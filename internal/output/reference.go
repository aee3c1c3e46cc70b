package output

import (
	"os"
	"path/filepath"

	"github.com/hydrolab/swe1d/internal/swe"
)

// ReferenceFile is the well-known name consumed by cross-implementation
// comparisons: the final snapshot of the default run, nothing else.
const ReferenceFile = "h_default_end.txt"

// WriteReference writes the final state to dir/ReferenceFile in the
// two-column format and returns the full path.
func WriteReference(dir string, x []float64, h swe.Field) (string, error) {
	path := filepath.Join(dir, ReferenceFile)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	w := NewWriter(f, x)
	if err := w.WriteBlock(h); err != nil {
		f.Close()
		return "", err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
