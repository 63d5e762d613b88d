package generator_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rollup/pkg/archive"
	"github.com/dmitrymomot/rollup/pkg/draft"
	"github.com/dmitrymomot/rollup/pkg/file"
	"github.com/dmitrymomot/rollup/pkg/generator"
	"github.com/dmitrymomot/rollup/pkg/logger"
)

const testTemplate = `<html><body>
<p>Hello {{CustomerName}}, rollup for {{Date}}</p>
<table>
<tr><td>Special Notes</td></tr>
<tr><td>{{SpecialNotes}}</td></tr>
</table>
</body></html>`

func newGenerator(t *testing.T, opts ...generator.Option) (*generator.Generator, string) {
	t.Helper()
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "template.html")
	require.NoError(t, os.WriteFile(tmplPath, []byte(testTemplate), 0o644))
	workDir := filepath.Join(dir, "work")

	opts = append([]generator.Option{
		generator.WithLogger(logger.Discard()),
		generator.WithClock(func() time.Time {
			return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
		}),
	}, opts...)
	return generator.New(generator.Config{TemplatePath: tmplPath, WorkDir: workDir}, opts...), workDir
}

func readDrafts(t *testing.T, batch *generator.Batch) map[string]*draft.Summary {
	t.Helper()
	zr, err := archive.NewReader(bytes.NewReader(batch.Archive), int64(len(batch.Archive)))
	require.NoError(t, err)

	out := make(map[string]*draft.Summary)
	for _, name := range zr.Names() {
		rc, err := zr.Open(name)
		require.NoError(t, err)
		s, err := draft.Read(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		out[name] = s
	}
	return out
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("single row round trip", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t)

		batch, err := gen.Generate(context.Background(), url.Values{
			"Date":           {"2024-01-15"},
			"CustomerName_0": {"Acme Corp"},
			"ASContacts_0":   {"ceo@acme.test"},
			"SpecialNotes_0": {"first\nsecond"},
		})
		require.NoError(t, err)

		assert.Equal(t, "01-15-2024", batch.Date)
		assert.Equal(t, "Rollup_Messages_01-15-2024.zip", batch.ArchiveName)
		require.Len(t, batch.Drafts, 1)
		assert.Equal(t, "Acme_Corp_01-15-2024.eml", batch.Drafts[0].FileName)
		assert.Nil(t, batch.Stored)

		drafts := readDrafts(t, batch)
		require.Contains(t, drafts, "Acme_Corp_01-15-2024.eml")
		d := drafts["Acme_Corp_01-15-2024.eml"]
		assert.Equal(t, "Acme Corp Weekly Rollup 01-15-2024", d.Subject)
		assert.Equal(t, "ceo@acme.test", d.To)
		assert.True(t, d.Unsent)
		assert.Contains(t, d.HTML, "Hello Acme Corp, rollup for 01-15-2024")
		assert.Contains(t, d.HTML, "<li>first</li><li>second</li>")
	})

	t.Run("blank rows are skipped", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t)

		batch, err := gen.Generate(context.Background(), url.Values{
			"Date":           {"2024-01-15"},
			"CustomerName_0": {"Acme"},
			"CustomerName_1": {"   "},
			"CustomerName_2": {"Globex"},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t,
			[]string{"Acme_01-15-2024.eml", "Globex_01-15-2024.eml"},
			mapKeys(readDrafts(t, batch)),
		)
	})

	t.Run("no rows gives an empty archive", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t)

		batch, err := gen.Generate(context.Background(), url.Values{"Date": {"2024-01-15"}})
		require.NoError(t, err)
		assert.Empty(t, batch.Drafts)
		assert.Empty(t, readDrafts(t, batch))
	})

	t.Run("cc line with nosend", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t)

		batch, err := gen.Generate(context.Background(), url.Values{
			"Date":                  {"2024-01-15"},
			"GlobalNosend":          {"true"},
			"CustomerName_0":        {"Acme"},
			"AccountTeamContacts_0": {"a@x.com"},
			"AdditionalContacts_0":  {"b@x.com"},
		})
		require.NoError(t, err)
		d := readDrafts(t, batch)["Acme_01-15-2024.eml"]
		require.NotNil(t, d)
		assert.Equal(t, "a@x.com; b@x.com; nosend", d.Cc)
	})

	t.Run("blank date uses the clock", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t)

		batch, err := gen.Generate(context.Background(), url.Values{"CustomerName_0": {"Acme"}})
		require.NoError(t, err)
		assert.Equal(t, "Rollup_Messages_03-05-2024.zip", batch.ArchiveName)
	})

	t.Run("invalid date", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t)

		_, err := gen.Generate(context.Background(), url.Values{"Date": {"15/01/2024"}})
		assert.ErrorIs(t, err, generator.ErrInvalidDate)
	})

	t.Run("colliding file names are suffixed", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t)

		batch, err := gen.Generate(context.Background(), url.Values{
			"Date":           {"2024-01-15"},
			"CustomerName_0": {"Acme Corp"},
			"CustomerName_1": {"Acme/Corp"},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t,
			[]string{"Acme_Corp_01-15-2024.eml", "Acme_Corp_01-15-2024_2.eml"},
			mapKeys(readDrafts(t, batch)),
		)
	})

	t.Run("working directory is removed", func(t *testing.T) {
		t.Parallel()
		gen, workDir := newGenerator(t)

		_, err := gen.Generate(context.Background(), url.Values{"CustomerName_0": {"Acme"}})
		require.NoError(t, err)

		entries, err := os.ReadDir(workDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := gen.Generate(ctx, url.Values{"CustomerName_0": {"Acme"}})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		gen := generator.New(generator.Config{
			TemplatePath: filepath.Join(t.TempDir(), "missing.html"),
			WorkDir:      t.TempDir(),
		}, generator.WithLogger(logger.Discard()))

		_, err := gen.Generate(context.Background(), url.Values{"CustomerName_0": {"Acme"}})
		assert.ErrorIs(t, err, generator.ErrTemplate)
	})

	t.Run("inline fallback", func(t *testing.T) {
		t.Parallel()
		gen := generator.New(generator.Config{
			Template: "<p>{{CustomerName}}</p>",
			WorkDir:  t.TempDir(),
		}, generator.WithLogger(logger.Discard()))

		batch, err := gen.Generate(context.Background(), url.Values{
			"Date":           {"2024-01-15"},
			"CustomerName_0": {"Acme"},
		})
		require.NoError(t, err)
		assert.Contains(t, readDrafts(t, batch)["Acme_01-15-2024.eml"].HTML, "<p>Acme</p>")
	})

	t.Run("template is read on every call", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "template.html")
		require.NoError(t, os.WriteFile(path, []byte("<p>v1 {{CustomerName}}</p>"), 0o644))
		gen := generator.New(generator.Config{TemplatePath: path, WorkDir: t.TempDir()},
			generator.WithLogger(logger.Discard()))
		values := url.Values{"Date": {"2024-01-15"}, "CustomerName_0": {"Acme"}}

		batch, err := gen.Generate(context.Background(), values)
		require.NoError(t, err)
		assert.Contains(t, readDrafts(t, batch)["Acme_01-15-2024.eml"].HTML, "v1 Acme")

		require.NoError(t, os.WriteFile(path, []byte("<p>v2 {{CustomerName}}</p>"), 0o644))
		batch, err = gen.Generate(context.Background(), values)
		require.NoError(t, err)
		assert.Contains(t, readDrafts(t, batch)["Acme_01-15-2024.eml"].HTML, "v2 Acme")
	})
}

func TestPreview(t *testing.T) {
	t.Parallel()

	t.Run("lists drafts without assembling", func(t *testing.T) {
		t.Parallel()
		gen, workDir := newGenerator(t)

		batch, err := gen.Preview(url.Values{
			"Date":                  {"2024-01-15"},
			"CustomerName_0":        {"Acme Corp"},
			"ASContacts_0":          {"ops@acme.test"},
			"AccountTeamContacts_0": {"am@corp.test"},
			"CustomerName_1":        {" "},
			"CustomerName_2":        {"Acme/Corp"},
			"GlobalNosend":          {"true"},
		})
		require.NoError(t, err)
		assert.Empty(t, batch.ID)
		assert.Empty(t, batch.Archive)
		assert.Equal(t, "Rollup_Messages_01-15-2024.zip", batch.ArchiveName)
		require.Len(t, batch.Drafts, 2)
		assert.Equal(t, generator.Draft{
			Customer: "Acme Corp",
			FileName: "Acme_Corp_01-15-2024.eml",
			Subject:  "Acme Corp Weekly Rollup 01-15-2024",
			To:       "ops@acme.test",
			Cc:       "am@corp.test; nosend",
		}, batch.Drafts[0])
		assert.Equal(t, "Acme_Corp_01-15-2024_2.eml", batch.Drafts[1].FileName)
		assert.NoDirExists(t, workDir)
	})

	t.Run("needs no template", func(t *testing.T) {
		t.Parallel()
		gen := generator.New(generator.Config{WorkDir: t.TempDir()})

		batch, err := gen.Preview(url.Values{"Date": {"2024-01-15"}, "CustomerName_0": {"Acme"}})
		require.NoError(t, err)
		assert.Len(t, batch.Drafts, 1)
	})

	t.Run("invalid date", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t)

		_, err := gen.Preview(url.Values{"Date": {"01/15/2024"}})
		assert.ErrorIs(t, err, generator.ErrInvalidDate)
	})
}

func TestGenerateConcurrent(t *testing.T) {
	t.Parallel()
	gen, workDir := newGenerator(t)

	customers := []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark"}

	var wg sync.WaitGroup
	batches := make([]*generator.Batch, len(customers))
	errs := make([]error, len(customers))
	for i, name := range customers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batches[i], errs[i] = gen.Generate(context.Background(), url.Values{
				"Date":           {"2024-01-15"},
				"CustomerName_0": {name},
			})
		}()
	}
	wg.Wait()

	for i, name := range customers {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{name + "_01-15-2024.eml"}, mapKeys(readDrafts(t, batches[i])))
	}
	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateRetention(t *testing.T) {
	t.Parallel()

	t.Run("stores archive", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		storage, err := file.NewLocalStorage(root, "/files")
		require.NoError(t, err)
		gen, _ := newGenerator(t, generator.WithRetention(storage))

		batch, err := gen.Generate(context.Background(), url.Values{
			"Date":           {"2024-01-15"},
			"CustomerName_0": {"Acme"},
		})
		require.NoError(t, err)
		require.NotNil(t, batch.Stored)

		want := "archives/01-15-2024/" + batch.ID + "/Rollup_Messages_01-15-2024.zip"
		assert.Equal(t, want, batch.Stored.Key)
		stored, err := storage.Get(context.Background(), want)
		require.NoError(t, err)
		assert.Equal(t, batch.Archive, stored)
	})

	t.Run("failure does not fail the batch", func(t *testing.T) {
		t.Parallel()
		gen, _ := newGenerator(t, generator.WithRetention(failingStorage{}))

		batch, err := gen.Generate(context.Background(), url.Values{"CustomerName_0": {"Acme"}})
		require.NoError(t, err)
		assert.Nil(t, batch.Stored)
		assert.NotEmpty(t, batch.Archive)
	})
}

type failingStorage struct{}

var errStorageDown = errors.New("storage down")

func (failingStorage) Put(context.Context, string, io.Reader, string) (*file.Object, error) {
	return nil, errStorageDown
}
func (failingStorage) Get(context.Context, string) ([]byte, error) { return nil, errStorageDown }
func (failingStorage) Delete(context.Context, string) error        { return errStorageDown }
func (failingStorage) Exists(context.Context, string) bool         { return false }
func (failingStorage) URL(string) string                           { return "" }

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
