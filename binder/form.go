package binder

import (
	"errors"
	"fmt"
	"net/http"
)

// Form binds url-encoded and multipart body values into fields tagged
// `form:"name"`. URL query values are never bound. A field tagged
// `form:"*"` of type url.Values receives every body value. Requests of other
// content types return ErrBinderNotApplicable.
//
//	type GenerateRequest struct {
//		Date   string     `form:"Date"`
//		Values url.Values `form:"*"`
//	}
//
//	r.Post("/generate", handler.Wrap(s.generate,
//		handler.WithBinders[handler.Context, GenerateRequest](binder.Form()),
//	))
func Form(opts ...Option) func(r *http.Request, v any) error {
	o := newOptions(opts)
	return func(r *http.Request, v any) error {
		switch mediaType(r) {
		case mimeForm:
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
		case mimeMultipart:
			if err := parseMultipart(r, o.maxMemory); err != nil {
				return err
			}
		default:
			return ErrBinderNotApplicable
		}
		return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)
	}
}

func parseMultipart(r *http.Request, maxMemory int64) error {
	if r.MultipartForm != nil {
		return nil
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: %v", ErrRequestTooLarge, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}
