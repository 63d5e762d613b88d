package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/rollup/pkg/logger"
	"github.com/dmitrymomot/rollup/pkg/requestid"
)

// ErrorPageParams feeds ErrorHandlerConfig.ErrorPage.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds ErrorHandlerConfig.ErrorToast.
type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning" or "info"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorPage renders regular requests. Nil falls back to plain text.
	ErrorPage func(ErrorPageParams) templ.Component
	// ErrorToast renders DataStar requests.
	ErrorToast func(ErrorToastParams) templ.Component
	// ToastTarget defaults to "#toast-container".
	ToastTarget string
	// ToastMode defaults to PatchPrepend.
	ToastMode datastar.ElementPatchMode
}

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

const genericErrorMessage = "An error occurred processing your request"

// Classify maps err to a status code and a user-facing message. Unknown
// errors become a 500 with a generic message.
func Classify(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    genericErrorMessage,
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		info.StatusCode = http.StatusBadRequest
		info.Message = validationMessage(validationErr)
	}

	switch {
	case info.StatusCode >= http.StatusInternalServerError:
		info.Type, info.LogLevel = "error", slog.LevelError
	case info.StatusCode >= http.StatusBadRequest:
		info.Type, info.LogLevel = "warning", slog.LevelWarn
	default:
		info.Type, info.LogLevel = "info", slog.LevelInfo
	}
	return info
}

func validationMessage(e ValidationError) string {
	msg := e.Error()
	if after, ok := strings.CutPrefix(msg, "validation error: "); ok {
		return after
	}
	return msg
}

// NewErrorHandler logs every error and renders it as a DataStar toast for
// DataStar requests, or as a full page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		id := requestid.FromContext(r.Context())
		info := Classify(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(id),
			logger.Error(err),
			logger.StatusCode(info.StatusCode),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		if IsDataStar(r) {
			renderToast(ctx, cfg, info, id, log)
			return
		}
		renderPage(ctx, cfg, info, id, log)
	}
}

func renderToast(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, id string, log *slog.Logger) {
	if cfg.ErrorToast == nil {
		log.Warn("no error toast configured for DataStar request", logger.RequestID(id))
		return
	}
	resp := Templ(
		cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: id}),
		WithTarget(cfg.ToastTarget),
		WithPatchMode(cfg.ToastMode),
	)
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.Error("failed to render error toast", logger.RequestID(id), logger.Error(err))
	}
}

func renderPage(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, id string, log *slog.Logger) {
	w := ctx.ResponseWriter()
	if cfg.ErrorPage == nil {
		http.Error(w, info.Message, info.StatusCode)
		return
	}

	page := cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  id,
		RetryURL:   ctx.Request().URL.Path,
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(info.StatusCode)
	if err := page.Render(ctx, w); err != nil {
		log.Error("failed to render error page", logger.RequestID(id), logger.Error(err))
	}
}
