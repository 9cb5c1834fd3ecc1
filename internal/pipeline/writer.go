package pipeline

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/tgextract/internal/model"
)

// Writer serializes filtered records to a file
type Writer struct {
	format string
}

// NewWriter creates a writer for the given output format ("text" or "json")
func NewWriter(format string) *Writer {
	return &Writer{format: format}
}

// WriteFile writes records to path, replacing any existing file.
// A failed write may leave a truncated file behind.
func (w *Writer) WriteFile(records []model.Record, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &model.IOError{Op: "write", Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &model.IOError{Op: "write", Path: path, Err: closeErr}
		}
	}()

	if err := w.Write(f, records); err != nil {
		return &model.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Write serializes records to out in the writer's format
func (w *Writer) Write(out io.Writer, records []model.Record) error {
	switch w.format {
	case model.FormatJSON:
		return writeJSON(out, records)
	case model.FormatText:
		return writeText(out, records)
	default:
		return fmt.Errorf("unknown output format %q", w.format)
	}
}

func writeJSON(out io.Writer, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// writeText emits "field: value" lines, one blank line after every record
func writeText(out io.Writer, records []model.Record) error {
	bw := bufio.NewWriter(out)
	for _, record := range records {
		for _, f := range record {
			if _, err := fmt.Fprintf(bw, "%s: %s\n", f.Name, textValue(f.Value)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// textValue renders strings verbatim and anything else as compact JSON
func textValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case nil:
		return "null"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}
