package handler

import (
	"mime"
	"net/http"
	"strconv"
)

type attachmentResponse struct {
	name        string
	contentType string
	data        []byte
}

func (a attachmentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	h := w.Header()
	h.Set("Content-Type", a.contentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.name}))
	h.Set("Content-Length", strconv.Itoa(len(a.data)))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}
	_, err := w.Write(a.data)
	return err
}

// Attachment sends data as a file download named name.
func Attachment(name, contentType string, data []byte) Response {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return attachmentResponse{name: name, contentType: contentType, data: data}
}

type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Error hands err to the configured ErrorHandler without writing anything.
func Error(err error) Response {
	return errorResponse{err: err}
}
