package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rollup/pkg/archive"
	"github.com/dmitrymomot/rollup/pkg/draft"
	"github.com/dmitrymomot/rollup/pkg/file"
	"github.com/dmitrymomot/rollup/pkg/logger"
	"github.com/dmitrymomot/rollup/pkg/rollup"
	"github.com/dmitrymomot/rollup/pkg/sanitizer"
)

// Form keys read outside the rows.
const (
	DateField     = "Date"
	NoSendField   = "GlobalNosend"
	archivePrefix = "archives"
)

// Config configures a Generator.
type Config struct {
	// TemplatePath is read on every call. When empty, Template is used.
	TemplatePath string `env:"ROLLUP_TEMPLATE_PATH"`
	// Template is the fallback template content.
	Template string `env:"-"`
	// WorkDir is the root for per-call working directories.
	WorkDir string `env:"ROLLUP_WORK_DIR"`
}

// Draft describes one generated draft.
type Draft struct {
	Customer string
	FileName string
	Subject  string
	To       string
	Cc       string
}

// Batch is the result of one Generate call.
type Batch struct {
	ID          string
	Date        string
	ArchiveName string
	Archive     []byte
	Drafts      []Draft
	// Stored is set when the archive was copied to retention storage.
	Stored *file.Object
}

// Generator turns form submissions into draft archives.
type Generator struct {
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
	newID     func() string
	retention file.Storage
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithClock overrides the clock used for the default rollup date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRetention stores a copy of every archive in s.
func WithRetention(s file.Storage) Option {
	return func(g *Generator) {
		g.retention = s
	}
}

// New returns a Generator. An empty WorkDir defaults to "rollup" inside the
// OS temp directory.
func New(cfg Config, opts ...Option) *Generator {
	if cfg.WorkDir == "" {
		cfg.WorkDir = filepath.Join(os.TempDir(), "rollup")
	}
	g := &Generator{
		cfg:   cfg,
		log:   slog.Default(),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds one draft per non-blank customer row in values and returns
// the zipped drafts.
func (g *Generator) Generate(ctx context.Context, values url.Values) (*Batch, error) {
	batch, rows, err := g.plan(values)
	if err != nil {
		return nil, err
	}

	tmpl, err := g.template()
	if err != nil {
		return nil, err
	}

	batch.ID = g.newID()
	dir, err := g.workDir(batch.ID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			g.log.WarnContext(ctx, "failed to remove working directory",
				logger.Component("generator"),
				logger.Error(err),
				slog.String("dir", dir),
			)
		}
	}()

	entries := make([]archive.Entry, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		d := batch.Drafts[i]
		p, err := draft.Assemble(filepath.Join(dir, d.FileName), draft.Message{
			To:      d.To,
			Cc:      d.Cc,
			Subject: d.Subject,
			HTML:    rollup.Resolve(tmpl, row, batch.Date),
		})
		if err != nil {
			return nil, fmt.Errorf("%w for %q: %w", ErrDraft, row.CustomerName, err)
		}
		entries = append(entries, archive.Entry{Name: d.FileName, Path: p})

		g.log.DebugContext(ctx, "draft assembled",
			logger.Component("generator"),
			logger.Customer(row.CustomerName),
			logger.Draft(d.FileName),
		)
	}

	batch.Archive, err = archive.Bytes(entries)
	if err != nil {
		return nil, errors.Join(ErrArchive, err)
	}

	g.retain(ctx, batch)

	g.log.InfoContext(ctx, "rollup batch generated",
		logger.Component("generator"),
		logger.Archive(batch.ArchiveName),
		logger.Rows(len(batch.Drafts)),
		slog.Bool("no_send", values.Get(NoSendField) == "true"),
	)
	return batch, nil
}

// Preview lists the drafts Generate would build for values. Nothing is
// assembled, so the batch has no ID and no archive.
func (g *Generator) Preview(values url.Values) (*Batch, error) {
	batch, _, err := g.plan(values)
	return batch, err
}

// plan resolves the date and the draft headers of every non-blank row.
// Drafts and the returned rows share indexes.
func (g *Generator) plan(values url.Values) (*Batch, []rollup.Row, error) {
	date, err := FormatDate(values.Get(DateField), g.now())
	if err != nil {
		return nil, nil, err
	}
	noSend := values.Get(NoSendField) == "true"

	batch := &Batch{Date: date, ArchiveName: ArchiveName(date)}
	var (
		rows  []rollup.Row
		names = make(map[string]int)
	)
	for _, row := range rollup.ParseRows(values) {
		if row.Blank() {
			continue
		}
		rows = append(rows, row)
		batch.Drafts = append(batch.Drafts, Draft{
			Customer: row.CustomerName,
			FileName: uniqueName(names, DraftName(sanitizer.FileStem(row.CustomerName), date)),
			Subject:  Subject(row.CustomerName, date),
			To:       row.Contacts,
			Cc:       CCLine(row.AccountTeam, row.AdditionalContacts, noSend),
		})
	}
	return batch, rows, nil
}

func (g *Generator) template() (string, error) {
	if g.cfg.TemplatePath == "" {
		if g.cfg.Template == "" {
			return "", fmt.Errorf("%w: no template configured", ErrTemplate)
		}
		return g.cfg.Template, nil
	}
	data, err := os.ReadFile(g.cfg.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return string(data), nil
}

func (g *Generator) workDir(id string) (string, error) {
	if err := os.MkdirAll(g.cfg.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWorkDir, err)
	}
	dir := filepath.Join(g.cfg.WorkDir, id)
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWorkDir, err)
	}
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWorkDir, err)
	}
	return dir, nil
}

// retain copies the archive to retention storage. Failures are logged only.
func (g *Generator) retain(ctx context.Context, batch *Batch) {
	if g.retention == nil {
		return
	}
	key := path.Join(archivePrefix, batch.Date, batch.ID, batch.ArchiveName)
	obj, err := g.retention.Put(ctx, key, bytes.NewReader(batch.Archive), "application/zip")
	if err != nil {
		g.log.ErrorContext(ctx, "failed to retain archive",
			logger.Component("generator"),
			logger.Archive(batch.ArchiveName),
			logger.Key(key),
			logger.Error(err),
		)
		return
	}
	batch.Stored = obj
}

// uniqueName suffixes repeated names: Acme_01-15-2024.eml, Acme_01-15-2024_2.eml, ...
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	n := seen[name]
	if n == 1 {
		return name
	}
	ext := filepath.Ext(name)
	candidate := name[:len(name)-len(ext)] + "_" + strconv.Itoa(n) + ext
	if _, taken := seen[candidate]; taken {
		return uniqueName(seen, candidate)
	}
	seen[candidate] = 1
	return candidate
}
