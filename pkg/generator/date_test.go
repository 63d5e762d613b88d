package generator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rollup/pkg/generator"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "iso", value: "2024-01-15", want: "01-15-2024"},
		{name: "padded", value: "  2024-01-15 ", want: "01-15-2024"},
		{name: "blank", value: "", want: "12-31-2024"},
		{name: "whitespace", value: "   ", want: "12-31-2024"},
		{name: "us order", value: "01-15-2024", wantErr: true},
		{name: "slashes", value: "2024/01/15", wantErr: true},
		{name: "short month", value: "2024-1-15", wantErr: true},
		{name: "letters", value: "20x4-01-15", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := generator.FormatDate(tt.value, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, generator.ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Rollup_Messages_01-15-2024.zip", generator.ArchiveName("01-15-2024"))
	assert.Equal(t, "Acme_Corp_01-15-2024.eml", generator.DraftName("Acme_Corp", "01-15-2024"))
	assert.Equal(t, "Acme Corp Weekly Rollup 01-15-2024", generator.Subject("Acme Corp", "01-15-2024"))
}

func TestCCLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		team, more string
		noSend     bool
		want       string
	}{
		{name: "both", team: "a@x.com", more: "b@x.com", want: "a@x.com; b@x.com"},
		{name: "team only", team: " a@x.com ", want: "a@x.com"},
		{name: "additional only", more: "b@x.com", want: "b@x.com"},
		{name: "none", want: ""},
		{name: "nosend alone", noSend: true, want: "nosend"},
		{name: "nosend appended", team: "a@x.com", more: "b@x.com", noSend: true, want: "a@x.com; b@x.com; nosend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, generator.CCLine(tt.team, tt.more, tt.noSend))
		})
	}
}
