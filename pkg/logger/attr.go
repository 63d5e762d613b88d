package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors". All-nil input yields an
// empty Attr, which slog drops.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return Group("errors", as...)
}

// Error records err under "error". Nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier. An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Method(m string) slog.Attr {
	return slog.String("method", m)
}

func Path(p string) slog.Attr {
	return slog.String("path", p)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Customer records the customer a draft belongs to.
func Customer(name string) slog.Attr {
	return slog.String("customer", name)
}

// Draft records a draft file name.
func Draft(name string) slog.Attr {
	return slog.String("draft", name)
}

// Archive records an archive file name.
func Archive(name string) slog.Attr {
	return slog.String("archive", name)
}

// Rows records how many rows produced drafts.
func Rows(n int) slog.Attr {
	return slog.Int("rows", n)
}

// Key records a storage key.
func Key(key string) slog.Attr {
	return slog.String("key", key)
}
