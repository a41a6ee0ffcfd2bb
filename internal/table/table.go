// Package table collects named float columns and dumps them as a TSV table.
// Test harnesses and the CLI use it to leave fit curves behind for plotting.
package table

import (
	"fmt"
	"io"
	"os"
)

// Table is a set of named columns. Column order follows first insertion.
type Table struct {
	order  []string
	cols   map[string][]float32
	maxLen int
}

// New creates an empty table.
func New() *Table {
	return &Table{cols: make(map[string][]float32)}
}

// ExtendCol appends values to the named column, creating it on first use.
func (t *Table) ExtendCol(col string, values ...float32) {
	if _, ok := t.cols[col]; !ok {
		t.order = append(t.order, col)
	}
	t.cols[col] = append(t.cols[col], values...)
	if n := len(t.cols[col]); n > t.maxLen {
		t.maxLen = n
	}
}

// PadCol appends value to the named column until it is as long as the
// longest column.
func (t *Table) PadCol(col string, value float32) {
	if _, ok := t.cols[col]; !ok {
		t.order = append(t.order, col)
	}
	for len(t.cols[col]) < t.maxLen {
		t.cols[col] = append(t.cols[col], value)
	}
}

// WriteTSV writes the header row and all rows, tab-separated. All columns
// must have the same length.
func (t *Table) WriteTSV(w io.Writer) error {
	if len(t.order) == 0 {
		return fmt.Errorf("there are no columns to write")
	}
	if err := t.validateColumnSizes(); err != nil {
		return err
	}
	for i, col := range t.order {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\t"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, col); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for row := 0; row < t.maxLen; row++ {
		for i, col := range t.order {
			if i > 0 {
				if _, err := fmt.Fprint(w, "\t"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%g", t.cols[col][row]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// SaveTSV writes the table to a file.
func (t *Table) SaveTSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := t.WriteTSV(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (t *Table) validateColumnSizes() error {
	for _, col := range t.order {
		if len(t.cols[col]) != t.maxLen {
			return fmt.Errorf("column %q has %d rows, want %d", col, len(t.cols[col]), t.maxLen)
		}
	}
	return nil
}
