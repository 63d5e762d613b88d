package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// Object describes a stored object.
type Object struct {
	Key         string
	Size        int64
	ContentType string
	URL         string
}

// Storage is implemented by every backend.
type Storage interface {
	// Put stores body under key, replacing any previous object.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (*Object, error)
	// Get returns the object content or ErrFileNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object. Deleting a missing object returns ErrFileNotFound.
	Delete(ctx context.Context, key string) error
	// Exists reports whether the object exists.
	Exists(ctx context.Context, key string) bool
	// URL returns the public URL for key.
	URL(key string) string
}

// CleanKey normalizes a key to a relative slash-separated path.
// It rejects keys that are empty or climb above the storage root.
func CleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	cleaned := path.Clean("/" + key)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
		}
	}
	return cleaned, nil
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: %v", ErrOperationTimeout, ctx.Err())
		}
		return fmt.Errorf("%w: %v", ErrOperationCanceled, ctx.Err())
	default:
		return nil
	}
}
