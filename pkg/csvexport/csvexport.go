// Package csvexport writes spreadsheet-friendly CSV: UTF-8 with a byte-order mark,
// a configurable delimiter and every field quoted.
package csvexport

import (
	"bufio"
	"io"
	"strings"
)

// BOM is the UTF-8 byte-order mark written before the first row.
const BOM = "\uFEFF"

// Writer writes quoted CSV rows.
type Writer struct {
	w         *bufio.Writer
	delimiter string
	started   bool
}

// NewWriter returns a Writer using ';' as the delimiter.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), delimiter: ";"}
}

// WithDelimiter changes the field delimiter.
func (w *Writer) WithDelimiter(d rune) *Writer {
	w.delimiter = string(d)
	return w
}

// Write writes one row. Fields are wrapped in double quotes and embedded quotes are doubled.
func (w *Writer) Write(fields []string) error {
	if !w.started {
		if _, err := w.w.WriteString(BOM); err != nil {
			return err
		}
		w.started = true
	}
	for i, f := range fields {
		if i > 0 {
			if _, err := w.w.WriteString(w.delimiter); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(Quote(f)); err != nil {
			return err
		}
	}
	_, err := w.w.WriteString("\r\n")
	return err
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Quote wraps a field in double quotes, doubling any quote inside it.
func Quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
