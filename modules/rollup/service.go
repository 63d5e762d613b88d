// Package rollup serves the input form and turns form submissions into a
// zip of draft emails.
package rollup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/rollup/binder"
	"github.com/dmitrymomot/rollup/handler"
	"github.com/dmitrymomot/rollup/pkg/generator"
	"github.com/dmitrymomot/rollup/pkg/logger"
	rolluppkg "github.com/dmitrymomot/rollup/pkg/rollup"
)

// Generator builds a batch from submitted form values.
type Generator interface {
	Generate(ctx context.Context, values url.Values) (*generator.Batch, error)
	Preview(values url.Values) (*generator.Batch, error)
}

// MsgInvalidDate is reported on the Date field.
const MsgInvalidDate = "Rollup date must be formatted as YYYY-MM-DD"

// PreviewTarget is the element the draft preview replaces.
const PreviewTarget = "#preview"

// Config configures the Service.
type Config struct {
	Title     string
	MaxMemory int64
}

// FormPageParams feeds Views.FormPage.
type FormPageParams struct {
	Title             string
	MaxCustomSections int
}

// PreviewParams feeds Views.Preview.
type PreviewParams struct {
	Date        string
	ArchiveName string
	Drafts      []generator.Draft
}

type Views struct {
	FormPage func(FormPageParams) templ.Component
	// Preview is patched into PreviewTarget for DataStar requests.
	Preview func(PreviewParams) templ.Component
}

type Service struct {
	cfg          Config
	gen          Generator
	views        *Views
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewService(
	cfg Config,
	gen Generator,
	views *Views,
	log *slog.Logger,
	errorHandler handler.ErrorHandler[handler.Context],
) *Service {
	if cfg.Title == "" {
		cfg.Title = "Weekly Rollup"
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		cfg:          cfg,
		gen:          gen,
		views:        views,
		log:          log.With(logger.Component("rollup")),
		errorHandler: errorHandler,
	}
}

// Routes registers GET /, POST /generate and POST /preview on r.
func (s *Service) Routes(r chi.Router) {
	r.Get("/", handler.Wrap(s.form,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/generate", handler.Wrap(s.generate,
		handler.WithBinders[handler.Context, GenerateRequest](binder.Form(binder.WithMaxMemory(s.cfg.MaxMemory))),
		handler.WithErrorHandler[handler.Context, GenerateRequest](s.errorHandler),
	))
	r.Post("/preview", handler.Wrap(s.preview,
		handler.WithBinders[handler.Context, GenerateRequest](binder.Form(binder.WithMaxMemory(s.cfg.MaxMemory))),
		handler.WithErrorHandler[handler.Context, GenerateRequest](s.errorHandler),
	))
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// GenerateRequest carries every submitted form value; rows are discovered
// by key.
type GenerateRequest struct {
	Values url.Values `form:"*"`
}

func (s *Service) form(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.FormPage(FormPageParams{
		Title:             s.cfg.Title,
		MaxCustomSections: rolluppkg.MaxCustomSections,
	}))
}

func (s *Service) generate(ctx handler.Context, req GenerateRequest) handler.Response {
	batch, err := s.gen.Generate(ctx, req.Values)
	if err != nil {
		return handler.Error(dateError(err))
	}

	s.log.InfoContext(ctx, "archive sent",
		logger.Archive(batch.ArchiveName),
		logger.Rows(len(batch.Drafts)),
		slog.Int("bytes", len(batch.Archive)),
	)
	return handler.Attachment(batch.ArchiveName, "application/zip", batch.Archive)
}

func (s *Service) preview(ctx handler.Context, req GenerateRequest) handler.Response {
	batch, err := s.gen.Preview(req.Values)
	if err != nil {
		return handler.Error(dateError(err))
	}

	s.log.DebugContext(ctx, "drafts previewed", logger.Rows(len(batch.Drafts)))
	return handler.Templ(
		s.views.Preview(PreviewParams{
			Date:        batch.Date,
			ArchiveName: batch.ArchiveName,
			Drafts:      batch.Drafts,
		}),
		handler.WithTarget(PreviewTarget),
		handler.WithPatchMode(handler.PatchInner),
	)
}

// dateError reports an invalid rollup date as a validation failure on the
// Date field.
func dateError(err error) error {
	if !errors.Is(err, generator.ErrInvalidDate) {
		return err
	}
	v := handler.NewValidationError()
	v.Add(generator.DateField, MsgInvalidDate)
	return errors.Join(v, err)
}
