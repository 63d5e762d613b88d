package rollup_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rollup/pkg/rollup"
)

func TestParseRows(t *testing.T) {
	t.Parallel()

	t.Run("orders rows by numeric index", func(t *testing.T) {
		t.Parallel()
		values := url.Values{
			"CustomerName_10": {"Ten"},
			"CustomerName_2":  {"Two"},
			"CustomerName_0":  {"Zero"},
			"CustomerName_x":  {"ignored"},
			"Customer_3":      {"ignored"},
			"Date":            {"2024-01-15"},
		}

		rows := rollup.ParseRows(values)
		require.Len(t, rows, 3)
		assert.Equal(t, []int{0, 2, 10}, []int{rows[0].Index, rows[1].Index, rows[2].Index})
		assert.Equal(t, "Zero", rows[0].CustomerName)
		assert.Equal(t, "Ten", rows[2].CustomerName)
	})

	t.Run("keeps blank rows for the caller to skip", func(t *testing.T) {
		t.Parallel()
		rows := rollup.ParseRows(url.Values{"CustomerName_0": {"   "}})
		require.Len(t, rows, 1)
		assert.True(t, rows[0].Blank())
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, rollup.ParseRows(url.Values{"Date": {"2024-01-15"}}))
	})
}

func TestRowFromValues(t *testing.T) {
	t.Parallel()

	t.Run("trims scalars and keeps section bodies raw", func(t *testing.T) {
		t.Parallel()
		values := url.Values{
			"CustomerName_1":        {"  Acme Corp "},
			"ASContacts_1":          {" jane@acme.test "},
			"AccountTeamContacts_1": {"a@x.com"},
			"AdditionalContacts_1":  {"b@x.com"},
			"DiscussionTopics_1":    {"  one\ntwo  "},
			"Signature_1":           {" Bob "},
		}

		row := rollup.RowFromValues(values, 1)
		assert.Equal(t, 1, row.Index)
		assert.Equal(t, "Acme Corp", row.CustomerName)
		assert.Equal(t, "jane@acme.test", row.Contacts)
		assert.Equal(t, "a@x.com", row.AccountTeam)
		assert.Equal(t, "b@x.com", row.AdditionalContacts)
		assert.Equal(t, "  one\ntwo  ", row.DiscussionTopics)
		assert.Equal(t, " Bob ", row.Signature)
	})

	t.Run("absent titles fall back to defaults", func(t *testing.T) {
		t.Parallel()
		row := rollup.RowFromValues(url.Values{"CustomerName_0": {"Acme"}}, 0)
		assert.Equal(t, rollup.DefaultGeneralTitle, row.GeneralTitle)
		assert.Equal(t, rollup.DefaultAccountManagementTitle, row.AccountManagementTitle)
		assert.Equal(t, rollup.DefaultDesignatedEngineerTitle, row.DesignatedEngineerTitle)
		assert.Equal(t, rollup.DefaultSpecialNotesTitle, row.SpecialNotesTitle)
	})

	t.Run("present titles override defaults even when blank", func(t *testing.T) {
		t.Parallel()
		values := url.Values{
			"GeneralTitle_0":      {" Overview "},
			"SpecialNotesTitle_0": {""},
		}
		row := rollup.RowFromValues(values, 0)
		assert.Equal(t, "Overview", row.GeneralTitle)
		assert.Equal(t, "", row.SpecialNotesTitle)
	})

	t.Run("custom sections need both title and content", func(t *testing.T) {
		t.Parallel()
		values := url.Values{
			"CustomSection1Title_0":  {"Risks"},
			"CustomSection1_0":       {"late delivery"},
			"CustomSection2Title_0":  {"Empty"},
			"CustomSection2_0":       {"   "},
			"CustomSection3_0":       {"no title"},
			"CustomSection20Title_0": {"Last"},
			"CustomSection20_0":      {"slot twenty"},
			"CustomSection21Title_0": {"Beyond"},
			"CustomSection21_0":      {"ignored"},
		}

		row := rollup.RowFromValues(values, 0)
		require.Len(t, row.CustomSections, 2)
		assert.Equal(t, rollup.CustomSection{Slot: 1, Title: "Risks", Content: "late delivery"}, row.CustomSections[0])
		assert.Equal(t, 20, row.CustomSections[1].Slot)
	})
}
