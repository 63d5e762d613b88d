package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

var (
	ErrInvalidDocument = errors.New("settings document is not a JSON object")
	ErrLoad            = errors.New("failed to load settings")
	ErrSave            = errors.New("failed to save settings")
)

// Document is a saved form state.
type Document map[string]any

// Store loads and saves the settings document.
type Store interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

// Clone returns a shallow copy. A nil document clones to an empty one.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	maps.Copy(out, d)
	return out
}

// Keys returns the number of top-level keys, for logging.
func (d Document) Keys() int {
	return len(d)
}

// Parse decodes data into a Document. Anything but a JSON object, including
// null, is rejected with ErrInvalidDocument.
func Parse(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidDocument
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidDocument)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Marshal encodes doc as JSON indented with two spaces. HTML characters are
// not escaped so saved section bodies stay readable.
func Marshal(doc Document) ([]byte, error) {
	if doc == nil {
		doc = Document{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
