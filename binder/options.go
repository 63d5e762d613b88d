package binder

import (
	"mime"
	"net/http"
)

const (
	// DefaultMaxMemory is the multipart memory limit (10MB).
	DefaultMaxMemory = 10 << 20
	// DefaultMaxBodySize caps JSON bodies (1MB).
	DefaultMaxBodySize = 1 << 20
)

// Option tunes a binder.
type Option func(*options)

type options struct {
	maxMemory      int64
	maxBodySize    int64
	anyContentType bool
}

func newOptions(opts []Option) options {
	o := options{maxMemory: DefaultMaxMemory, maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxMemory sets the memory limit for multipart parsing. Non-positive
// values are ignored.
func WithMaxMemory(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// WithMaxBodySize caps the JSON body size. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithAnyContentType makes JSON decode the body whatever content type the
// request declares.
func WithAnyContentType() Option {
	return func(o *options) {
		o.anyContentType = true
	}
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mt
}

const (
	mimeForm      = "application/x-www-form-urlencoded"
	mimeMultipart = "multipart/form-data"
	mimeJSON      = "application/json"
)
