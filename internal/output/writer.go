// Package output handles the on-disk artifacts of a run: the two-column
// snapshot stream, the reference end-state file, and the per-run store.
//
// The snapshot format is one line per grid cell, height then x-coordinate,
// whitespace-separated. Successive snapshots are appended as blocks to one
// stream in time order.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/hydrolab/swe1d/internal/swe"
)

// Writer streams snapshot blocks. Callers must Flush (or Close the
// underlying file) once the run ends.
type Writer struct {
	w *bufio.Writer
	x []float64
}

func NewWriter(w io.Writer, x []float64) *Writer {
	return &Writer{w: bufio.NewWriter(w), x: x}
}

// WriteBlock appends one snapshot. The shortest round-trippable decimal
// form is used so a reader recovers the exact float64 values.
func (w *Writer) WriteBlock(h swe.Field) error {
	if len(h) != len(w.x) {
		return fmt.Errorf("block has %d cells, grid has %d: %w", len(h), len(w.x), swe.ErrStateMismatch)
	}
	var buf []byte
	for i, v := range h {
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, w.x[i], 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := w.w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Flush() error { return w.w.Flush() }

// Block is one parsed snapshot.
type Block struct {
	H []float64
	X []float64
}

// ReadBlocks parses a snapshot stream written by Writer, splitting it into
// blocks of n cells. A trailing partial block is an error.
func ReadBlocks(r io.Reader, n int) ([]Block, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []Block
	var cur Block
	line := 0
	for sc.Scan() {
		line++
		var h, x float64
		if _, err := fmt.Sscan(sc.Text(), &h, &x); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cur.H = append(cur.H, h)
		cur.X = append(cur.X, x)
		if len(cur.H) == n {
			blocks = append(blocks, cur)
			cur = Block{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(cur.H) != 0 {
		return nil, fmt.Errorf("trailing partial block of %d cells (want %d)", len(cur.H), n)
	}
	return blocks, nil
}
