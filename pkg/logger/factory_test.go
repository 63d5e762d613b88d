package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rollup/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to JSON at info", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello", logger.Customer("Acme"))
		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "customer=Acme")
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "rollup")))
		log.Info("msg")
		assert.Equal(t, "rollup", decode(t, buf)["svc"])
	})

	t.Run("level by name", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("warn"))
		log.Info("hidden")
		assert.Empty(t, buf.String())
		log.Warn("shown")
		assert.Equal(t, "shown", decode(t, buf)["msg"])
	})

	t.Run("unknown level name is ignored", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("loud"))
		log.Info("shown")
		assert.NotEmpty(t, buf.String())
	})
}

func TestContextExtraction(t *testing.T) {
	t.Parallel()

	type key string
	ctxKey := key("id")

	t.Run("extractor", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				if v, ok := ctx.Value(ctxKey).(string); ok {
					return slog.String("id", v), true
				}
				return slog.Attr{}, false
			}),
		)
		log.InfoContext(context.WithValue(context.Background(), ctxKey, "42"), "msg")
		assert.Equal(t, "42", decode(t, buf)["id"])
	})

	t.Run("context value", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("trace", ctxKey))
		log.InfoContext(context.Background(), "no value")
		assert.NotContains(t, decode(t, buf), "trace")

		buf.Reset()
		log.InfoContext(context.WithValue(context.Background(), ctxKey, "t-1"), "value")
		assert.Equal(t, "t-1", decode(t, buf)["trace"])
	})

	t.Run("survives With", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("trace", ctxKey)).
			With(logger.Component("generator"))
		log.InfoContext(context.WithValue(context.Background(), ctxKey, "t-2"), "msg")
		entry := decode(t, buf)
		assert.Equal(t, "t-2", entry["trace"])
		assert.Equal(t, "generator", entry["component"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env     string
		wantEnv string
		json    bool
		debug   bool
	}{
		{env: "production", wantEnv: "production", json: true},
		{env: "prod", wantEnv: "production", json: true},
		{env: "staging", wantEnv: "staging", json: true},
		{env: "development", wantEnv: "development", debug: true},
		{env: "", wantEnv: "development", debug: true},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(tt.env, "rollup"))

			log.Debug("debug")
			assert.Equal(t, tt.debug, buf.Len() > 0)

			buf.Reset()
			log.Info("info")
			if tt.json {
				entry := decode(t, buf)
				assert.Equal(t, "rollup", entry["service"])
				assert.Equal(t, tt.wantEnv, entry["env"])
				return
			}
			assert.Contains(t, buf.String(), "service=rollup")
			assert.Contains(t, buf.String(), "env="+tt.wantEnv)
		})
	}
}

func TestWithFormatPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
