// Package settings serves load, save, backup and restore of the saved form
// state.
package settings

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/rollup/binder"
	"github.com/dmitrymomot/rollup/handler"
	"github.com/dmitrymomot/rollup/pkg/logger"
	"github.com/dmitrymomot/rollup/pkg/settings"
)

// Response messages.
const (
	MsgNoFileUploaded  = "No file uploaded"
	MsgNoFileSelected  = "No file selected"
	MsgNotJSONFile     = "Please upload a JSON file"
	MsgInvalidJSONFile = "Invalid JSON file"
	MsgRestored        = "Settings restored successfully"
)

const (
	statusOK      = "ok"
	statusSuccess = "success"
	statusError   = "error"

	timestampLayout = "2006-01-02 15:04:05"
	backupField     = "backup_file"
)

// StatusBody is the JSON body of save and restore responses.
type StatusBody struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	SavedAt    string `json:"saved_at,omitempty"`
	RestoredAt string `json:"restored_at,omitempty"`
}

// Config configures the Service.
type Config struct {
	MaxBodySize int64
	MaxMemory   int64
}

type Service struct {
	cfg   Config
	store settings.Store
	log   *slog.Logger
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source for timestamps and backup names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(cfg Config, store settings.Store, log *slog.Logger, opts ...Option) *Service {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = binder.DefaultMaxBodySize
	}
	if log == nil {
		log = logger.Discard()
	}
	s := &Service{
		cfg:   cfg,
		store: store,
		log:   log.With(logger.Component("settings")),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes registers the settings endpoints on r.
func (s *Service) Routes(r chi.Router) {
	r.Get("/load-settings", handler.Wrap(s.load,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/save-settings", handler.Wrap(s.save,
		handler.WithBinders[handler.Context, SaveRequest](binder.JSON(
			binder.WithMaxBodySize(s.cfg.MaxBodySize),
			binder.WithAnyContentType(),
		)),
		handler.WithErrorHandler[handler.Context, SaveRequest](s.errorHandler),
	))
	r.Get("/backup-settings", handler.Wrap(s.backup,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/restore-settings", handler.Wrap(s.restore,
		handler.WithBinders[handler.Context, RestoreRequest](
			binder.File(binder.WithMaxMemory(s.cfg.MaxMemory)),
			binder.Form(binder.WithMaxMemory(s.cfg.MaxMemory)),
		),
		handler.WithErrorHandler[handler.Context, RestoreRequest](s.errorHandler),
	))
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// SaveRequest is the posted settings document. The body is parsed as JSON
// whatever content type it declares.
type SaveRequest struct {
	Document settings.Document
}

// UnmarshalJSON accepts only a JSON object.
func (r *SaveRequest) UnmarshalJSON(data []byte) error {
	doc, err := settings.Parse(data)
	if err != nil {
		return err
	}
	r.Document = doc
	return nil
}

// RestoreRequest is the multipart backup upload. Field is set when the file
// input was submitted without a file.
type RestoreRequest struct {
	File  *binder.FileUpload `file:"backup_file"`
	Field []string           `form:"backup_file"`
}

func (s *Service) load(ctx handler.Context, _ struct{}) handler.Response {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(doc)
}

func (s *Service) save(ctx handler.Context, req SaveRequest) handler.Response {
	if err := s.store.Save(ctx, req.Document); err != nil {
		return handler.Error(err)
	}
	now := s.now().Format(timestampLayout)
	s.log.InfoContext(ctx, "settings saved", slog.Int("keys", req.Document.Keys()))
	return handler.JSON(StatusBody{Status: statusOK, SavedAt: now})
}

func (s *Service) backup(ctx handler.Context, _ struct{}) handler.Response {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return handler.Error(err)
	}
	now := s.now()
	data, err := settings.Marshal(settings.Backup(doc, now))
	if err != nil {
		return handler.Error(err)
	}
	return handler.Attachment(settings.BackupFilename(now), "application/json", data)
}

func (s *Service) restore(ctx handler.Context, req RestoreRequest) handler.Response {
	switch {
	case req.File == nil && len(req.Field) == 0:
		return errorStatus(http.StatusBadRequest, MsgNoFileUploaded)
	case req.File == nil || req.File.Filename == "":
		return errorStatus(http.StatusBadRequest, MsgNoFileSelected)
	case !strings.HasSuffix(req.File.Filename, ".json"):
		return errorStatus(http.StatusBadRequest, MsgNotJSONFile)
	}

	doc, err := settings.Parse(req.File.Content)
	if err != nil {
		s.log.WarnContext(ctx, "rejected backup file", logger.Error(err), slog.String("file", req.File.Filename))
		return errorStatus(http.StatusBadRequest, MsgInvalidJSONFile)
	}

	doc = settings.StripBackupMeta(doc)
	if err := s.store.Save(ctx, doc); err != nil {
		s.log.ErrorContext(ctx, "restore failed", logger.Error(err))
		return errorStatus(http.StatusInternalServerError, fmt.Sprintf("Error restoring backup: %v", err))
	}

	s.log.InfoContext(ctx, "settings restored", slog.Int("keys", doc.Keys()), slog.String("file", req.File.Filename))
	return handler.JSON(StatusBody{
		Status:     statusSuccess,
		Message:    MsgRestored,
		RestoredAt: s.now().Format(timestampLayout),
	})
}

// errorHandler answers every failure with a StatusBody.
func (s *Service) errorHandler(ctx handler.Context, err error) {
	info := handler.Classify(err)
	msg := info.Message
	if info.StatusCode < http.StatusInternalServerError {
		msg = err.Error()
	}
	s.log.LogAttrs(ctx, info.LogLevel, "settings request failed",
		logger.Error(err),
		logger.StatusCode(info.StatusCode),
		logger.Method(ctx.Request().Method),
		logger.Path(ctx.Request().URL.Path),
	)
	if rerr := errorStatus(info.StatusCode, msg).Render(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
		s.log.ErrorContext(ctx, "failed to write error response", logger.Error(rerr))
	}
}

func errorStatus(code int, msg string) handler.Response {
	return handler.JSON(StatusBody{Status: statusError, Message: msg}, handler.WithJSONStatus(code))
}
