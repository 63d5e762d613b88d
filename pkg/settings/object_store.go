package settings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrymomot/rollup/pkg/file"
)

// ObjectStore keeps the document as a single object in a file.Storage.
type ObjectStore struct {
	storage file.Storage
	key     string
	mu      sync.Mutex
}

// NewObjectStore returns a store that saves the document under key.
func NewObjectStore(storage file.Storage, key string) *ObjectStore {
	return &ObjectStore{storage: storage, key: key}
}

// Load fetches the document. A missing object yields an empty document.
func (s *ObjectStore) Load(ctx context.Context) (Document, error) {
	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, file.ErrFileNotFound) {
		return Document{}, nil
	}
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}
	return doc, nil
}

// Save uploads the document, replacing the previous one.
func (s *ObjectStore) Save(ctx context.Context, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.storage.Put(ctx, s.key, bytes.NewReader(data), "application/json"); err != nil {
		return errors.Join(ErrSave, err)
	}
	return nil
}
