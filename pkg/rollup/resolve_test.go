package rollup_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rollup/pkg/rollup"
)

const testTemplate = `<html><body>
<h1>{{CustomerName}} rollup for {{Date}}</h1>
<p>To: {{Contacts}} Cc: {{CCAddresses}} Also: {{AdditionalContacts}}</p>
<table>
<tr><td>General</td></tr>
<tr><th>General</th></tr>
<tr><td>{{DiscussionTopics}}</td></tr>
<tr><th>Account Management</th></tr>
<tr><td>{{AccountManagement}}</td></tr>
<tr><th>Designated Engineer(s)</th></tr>
<tr><td>{{DesignatedEngineer}}</td></tr>
<tr><th>Special Notes</th></tr>
<tr><td>{{SpecialNotes}}</td></tr>
<tr><td>footer</td></tr>
</table>
</body></html>`

func resolveValues(t *testing.T, tmpl string, values url.Values) string {
	t.Helper()
	rows := rollup.ParseRows(values)
	require.Len(t, rows, 1)
	return rollup.Resolve(tmpl, rows[0], "01-15-2024")
}

func TestResolve_ScalarTokens(t *testing.T) {
	t.Parallel()

	out := resolveValues(t, testTemplate, url.Values{
		"CustomerName_0":        {"Acme & <Sons>"},
		"ASContacts_0":          {"jane@acme.test"},
		"AccountTeamContacts_0": {"a@x.com"},
		"AdditionalContacts_0":  {"b@x.com"},
	})

	assert.True(t, strings.HasPrefix(out, rollup.StyleBlock))
	assert.NotContains(t, out, "{{CustomerName}}")
	assert.NotContains(t, out, "{{Date}}")
	assert.Contains(t, out, "<h1>Acme &amp; &lt;Sons&gt; rollup for 01-15-2024</h1>")
	assert.Equal(t, 1, strings.Count(out, "Acme &amp; &lt;Sons&gt;"))
	assert.Contains(t, out, "To: jane@acme.test Cc: a@x.com Also: b@x.com")
	assert.NotContains(t, out, "{{")
}

func TestResolve_SectionBodies(t *testing.T) {
	t.Parallel()

	t.Run("plain lines become escaped list items", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, url.Values{
			"CustomerName_0":     {"Acme"},
			"DiscussionTopics_0": {"first item\n\n  second & third  \r\nfourth <b>\n   "},
		})
		assert.Contains(t, out, "<ul><li>first item</li><li>second &amp; third</li><li>fourth &lt;b&gt;</li></ul>")
		assert.Equal(t, 3, strings.Count(out, "<li>"))
	})

	t.Run("markup is inserted verbatim", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, url.Values{
			"CustomerName_0":      {"Acme"},
			"AccountManagement_0": {"  <p>Renewal <b>signed</b></p>"},
		})
		assert.Contains(t, out, "<td><p>Renewal <b>signed</b></p></td>")
	})

	t.Run("artifacts and plus signs are cleaned", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, url.Values{
			"CustomerName_0":       {"Acme"},
			"DesignatedEngineer_0": {"Jane+Doe=20 on=sdf site"},
		})
		assert.Contains(t, out, "<li>Jane Doe on site</li>")
	})

	t.Run("blank body resolves to nothing", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, url.Values{
			"CustomerName_0": {"Acme"},
			"SpecialNotes_0": {" \n \n"},
		})
		assert.Contains(t, out, "<tr><td></td></tr>")
		assert.NotContains(t, out, "{{SpecialNotes}}")
	})
}

func TestSectionHTML_ItemCountMatchesLines(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 5; n++ {
		lines := make([]string, 0, n)
		for i := range n {
			lines = append(lines, strings.Repeat("x", i+1)+" <&>")
		}
		out := rollup.SectionHTML(strings.Join(lines, "\n"))
		assert.Equal(t, n, strings.Count(out, "<li>"))
		assert.NotContains(t, out, "<&>")
	}
}

func TestResolve_Titles(t *testing.T) {
	t.Parallel()

	t.Run("defaults leave headings unchanged", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, url.Values{"CustomerName_0": {"Acme"}})
		assert.Contains(t, out, "<th>General</th>")
		assert.Contains(t, out, "<th>Designated Engineer(s)</th>")
	})

	t.Run("renamed headings are escaped", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, url.Values{
			"CustomerName_0":       {"Acme"},
			"GeneralTitle_0":       {"Overview & Status"},
			"DesignatedEngTitle_0": {"Engineers"},
		})
		assert.Contains(t, out, "<th>Overview &amp; Status</th>")
		assert.Contains(t, out, "<td>Overview &amp; Status</td>")
		assert.Contains(t, out, "<th>Engineers</th>")
		assert.NotContains(t, out, ">General<")
	})

	t.Run("title tokens", func(t *testing.T) {
		t.Parallel()
		tmpl := `<h2>{{GeneralTitle}}</h2><h2>{{SpecialNotesTitle}}</h2>`
		out := resolveValues(t, tmpl, url.Values{
			"CustomerName_0":      {"Acme"},
			"SpecialNotesTitle_0": {"Notes"},
		})
		assert.Contains(t, out, "<h2>General</h2><h2>Notes</h2>")
	})
}

func TestResolve_CustomSections(t *testing.T) {
	t.Parallel()

	values := func(extra url.Values) url.Values {
		v := url.Values{
			"CustomerName_0":        {"Acme"},
			"SpecialNotes_0":        {"note text"},
			"CustomSection1Title_0": {"Risks & Issues"},
			"CustomSection1_0":      {"late delivery"},
			"CustomSection2Title_0": {"Wins"},
			"CustomSection2_0":      {"<p>big deal</p>"},
		}
		for k, vv := range extra {
			v[k] = vv
		}
		return v
	}

	t.Run("inserted after the special notes content row", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, values(nil))

		notes := strings.Index(out, "<li>note text</li>")
		risks := strings.Index(out, "Risks &amp; Issues")
		footer := strings.Index(out, "<tr><td>footer</td></tr>")
		require.Positive(t, notes)
		assert.Greater(t, risks, notes)
		assert.Less(t, risks, footer)

		assert.Contains(t, out, "background:#c0392b")
		assert.Contains(t, out, "<li>late delivery</li>")
		assert.Contains(t, out, "<p>big deal</p>")
		assert.Less(t, risks, strings.Index(out, "Wins"))
	})

	t.Run("follows a renamed special notes heading", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, values(url.Values{"SpecialNotesTitle_0": {"Notes"}}))
		notes := strings.Index(out, "<li>note text</li>")
		require.Positive(t, strings.Index(out, "<th>Notes</th>"))
		risks := strings.Index(out, "Risks &amp; Issues")
		footer := strings.Index(out, "<tr><td>footer</td></tr>")
		require.Positive(t, notes)
		assert.Greater(t, risks, notes)
		assert.Less(t, risks, footer)
	})

	t.Run("falls back to the last table close", func(t *testing.T) {
		t.Parallel()
		tmpl := "<table><tr><td>a</td></tr></table><table><tr><td>b</td></tr></table>"
		out := resolveValues(t, tmpl, values(nil))
		risks := strings.Index(out, "Risks &amp; Issues")
		assert.Greater(t, risks, strings.Index(out, "<td>b</td>"))
		assert.True(t, strings.HasSuffix(out, "</tr></table>"))
	})

	t.Run("uses the token when present", func(t *testing.T) {
		t.Parallel()
		tmpl := "<table>{{CustomSections}}</table><p>Special Notes</p><table></table>"
		out := resolveValues(t, tmpl, values(nil))
		assert.Less(t, strings.Index(out, "Risks &amp; Issues"), strings.Index(out, "<p>Special Notes</p>"))
		assert.NotContains(t, out, "{{CustomSections}}")
	})

	t.Run("token removed when there is nothing to insert", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, "<table>{{CustomSections}}</table>", url.Values{"CustomerName_0": {"Acme"}})
		assert.Equal(t, rollup.StyleBlock+"<table></table>", out)
	})

	t.Run("no anchors leaves the document alone", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, "<p>{{CustomerName}}</p>", values(nil))
		assert.Equal(t, rollup.StyleBlock+"<p>Acme</p>", out)
	})
}

func TestResolve_Signature(t *testing.T) {
	t.Parallel()

	t.Run("plain signature before closing body", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, url.Values{
			"CustomerName_0": {"Acme"},
			"Signature_0":    {"Jane+Doe & Co"},
		})
		assert.Contains(t, out, `<div style="margin-top: 30px;"><p style="margin:0; line-height:1.0;">Jane Doe &amp; Co</p></div></body>`)
	})

	t.Run("markup signature paragraphs are restyled", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, testTemplate, url.Values{
			"CustomerName_0": {"Acme"},
			"Signature_0":    {"<p>Jane</p><p>Support</p>"},
		})
		assert.Contains(t, out, `<p style="margin:0; line-height:1.0;">Jane</p><p style="margin:0; line-height:1.0;">Support</p></div></body>`)
	})

	t.Run("appended without a body tag", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, "<p>hi</p>", url.Values{
			"CustomerName_0": {"Acme"},
			"Signature_0":    {"Jane"},
		})
		assert.True(t, strings.HasSuffix(out, `<p>hi</p><div style="margin-top: 30px;"><p style="margin:0; line-height:1.0;">Jane</p></div>`))
	})

	t.Run("empty signature adds nothing", func(t *testing.T) {
		t.Parallel()
		out := resolveValues(t, "<body>x</body>{{Signature}}", url.Values{"CustomerName_0": {"Acme"}})
		assert.Equal(t, rollup.StyleBlock+"<body>x</body>", out)
	})
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"CustomerName_0":        {"Acme"},
		"DiscussionTopics_0":    {"a\nb"},
		"CustomSection1Title_0": {"X"},
		"CustomSection1_0":      {"y"},
		"Signature_0":           {"Jane"},
	}
	assert.Equal(t, resolveValues(t, testTemplate, values), resolveValues(t, testTemplate, values))
}
