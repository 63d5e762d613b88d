package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/rollup/binder"
)

// HandlerFunc handles a bound request of type R with context C.
//
//	func (s *Service) generate(ctx handler.Context, req GenerateRequest) handler.Response {
//		batch, err := s.gen.Generate(ctx, req.Values)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Attachment(batch.ArchiveName, "application/zip", batch.Archive)
//	}
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response renders itself. A returned error goes to the ErrorHandler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from r.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes the response for a failed bind or render.
type ErrorHandler[C Context] func(ctx C, err error)

// WrapOption configures Wrap.
type WrapOption[C Context, R any] func(*wrapConfig[C, R])

type wrapConfig[C Context, R any] struct {
	binders      []Bind
	errorHandler ErrorHandler[C]
}

// WithBinders appends binders. They run in order; each handles its own tags.
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.binders = append(c.binders, binders...)
	}
}

func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func defaultErrorHandler[C Context](ctx C, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		http.Error(ctx.ResponseWriter(), httpErr.Key, httpErr.Code)
		return
	}
	http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
}

// bindError tags a binder failure with a client error status unless it
// already carries one.
func bindError(err error) error {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return err
	}
	switch {
	case errors.Is(err, binder.ErrRequestTooLarge):
		return fmt.Errorf("%w: %w", ErrRequestEntityTooLarge, err)
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return fmt.Errorf("%w: %w", ErrUnsupportedMediaType, err)
	default:
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
}

// Wrap adapts h to http.HandlerFunc. C must be satisfied by the value
// NewContext returns.
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	cfg := &wrapConfig[C, R]{errorHandler: defaultErrorHandler[C]}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, ok := NewContext(w, r).(C)
		if !ok {
			panic("handler: context type not satisfied by NewContext")
		}

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				if errors.Is(err, binder.ErrBinderNotApplicable) {
					continue
				}
				cfg.errorHandler(ctx, bindError(err))
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
