package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/tgextract/internal/model"
)

// Loader reads a chat export from disk
type Loader struct{}

// NewLoader creates a new Loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the export at path. The whole document is held in memory.
func (l *Loader) Load(path string) (*model.Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, &model.IOError{Op: "read", Path: path, Err: err}
	}
	return Decode(path, data)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(f)
}

// Decode parses an export already in memory; path is only used in errors
func Decode(path string, data []byte) (*model.Document, error) {
	var root any
	if err := decodeStrict(data, &root); err != nil {
		return nil, &model.ParseError{Path: path, Reason: "invalid JSON", Err: err}
	}
	envelope, ok := root.(map[string]any)
	if !ok {
		return nil, &model.ParseError{Path: path, Reason: "top-level value is not an object"}
	}

	rawMessages, ok := envelope["messages"]
	if !ok {
		return nil, &model.ParseError{Path: path, Reason: `missing "messages"`}
	}
	entries, ok := rawMessages.([]any)
	if !ok {
		return nil, &model.ParseError{Path: path, Reason: `"messages" is not a list`}
	}

	doc := &model.Document{Messages: make([]model.Message, 0, len(entries))}
	doc.Name, _ = envelope["name"].(string)
	doc.Type, _ = envelope["type"].(string)

	for i, entry := range entries {
		msg, ok := entry.(map[string]any)
		if !ok {
			return nil, &model.ParseError{Path: path, Reason: fmt.Sprintf("message %d is not an object", i)}
		}
		doc.Messages = append(doc.Messages, model.Message(msg))
	}

	return doc, nil
}

// decodeStrict decodes a single JSON value keeping numbers as json.Number
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after top-level value")
	}
	return nil
}
