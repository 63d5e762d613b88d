// Package handler adapts typed handler functions to net/http.
//
// A HandlerFunc receives a Context and a request value filled by binders,
// and returns a Response. Wrap runs the binders, calls the handler and
// renders the response; bind and render failures go to an ErrorHandler.
//
//	type GenerateRequest struct {
//		Values url.Values `form:"*"`
//	}
//
//	r.Post("/generate", handler.Wrap(s.generate,
//		handler.WithBinders[handler.Context, GenerateRequest](binder.Form()),
//		handler.WithErrorHandler[handler.Context, GenerateRequest](errorHandler),
//	))
//
// Responses: JSON, Attachment for downloads, Templ for
// HTML components and Error to defer to the ErrorHandler. Templ and the
// error handler switch to DataStar server-sent events when the request
// comes from a DataStar client.
//
// NewErrorHandler classifies errors by HTTPError and ValidationError, logs
// them with the request ID and renders an error page or a toast.
package handler
