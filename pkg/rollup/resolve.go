package rollup

import (
	"html"
	"strings"

	"github.com/dmitrymomot/rollup/pkg/sanitizer"
)

// StyleBlock is prepended to every resolved document.
const StyleBlock = "<style> body, p, ul, li { font-size:11pt !important; line-height:1.15 !important; } </style>\n"

// Placeholder tokens understood by Resolve.
const (
	TokenCustomerName       = "{{CustomerName}}"
	TokenDate               = "{{Date}}"
	TokenContacts           = "{{Contacts}}"
	TokenCCAddresses        = "{{CCAddresses}}"
	TokenAdditionalContacts = "{{AdditionalContacts}}"

	TokenDiscussionTopics   = "{{DiscussionTopics}}"
	TokenAccountManagement  = "{{AccountManagement}}"
	TokenDesignatedEngineer = "{{DesignatedEngineer}}"
	TokenSpecialNotes       = "{{SpecialNotes}}"

	TokenGeneralTitle            = "{{GeneralTitle}}"
	TokenAccountManagementTitle  = "{{AccountManagementTitle}}"
	TokenDesignatedEngineerTitle = "{{DesignatedEngineerTitle}}"
	TokenSpecialNotesTitle       = "{{SpecialNotesTitle}}"

	TokenCustomSections = "{{CustomSections}}"
	TokenSignature      = "{{Signature}}"
)

// SpecialNotesAnchor marks the section after which custom sections are spliced.
const SpecialNotesAnchor = "Special Notes"

const (
	customHeaderCell = `<td style="background:#c0392b;color:#ffffff;font-weight:bold;text-align:center;padding:3px 6px;border-bottom:1px solid #8b2b21;border-left:1px solid #8b2b21;border-right:1px solid #8b2b21;font-size:11pt;">`
	customBodyCell   = `<td style="padding:6px;border-bottom:1px solid #8b2b21;border-left:1px solid #8b2b21;border-right:1px solid #8b2b21;font-size:11pt;">`

	signatureParagraph = `<p style="margin:0; line-height:1.0;">`
	signatureWrapper   = `<div style="margin-top: 30px;">`
)

// Resolve substitutes row into tmpl. date must already be formatted the way
// it should appear in the document. The result is deterministic and Resolve
// never fails: anchors that cannot be found are skipped.
func Resolve(tmpl string, row Row, date string) string {
	doc := StyleBlock + tmpl

	doc = strings.NewReplacer(
		TokenCustomerName, html.EscapeString(row.CustomerName),
		TokenDate, html.EscapeString(date),
		TokenContacts, html.EscapeString(row.Contacts),
		TokenCCAddresses, html.EscapeString(row.AccountTeam),
		TokenAdditionalContacts, html.EscapeString(row.AdditionalContacts),
	).Replace(doc)

	doc = replaceTitles(doc, row)

	doc = strings.NewReplacer(
		TokenDiscussionTopics, SectionHTML(row.DiscussionTopics),
		TokenAccountManagement, SectionHTML(row.AccountManagement),
		TokenDesignatedEngineer, SectionHTML(row.DesignatedEngineer),
		TokenSpecialNotes, SectionHTML(row.SpecialNotes),
	).Replace(doc)

	doc = insertCustomSections(doc, CustomSectionsHTML(row.CustomSections), row.SpecialNotesTitle)
	doc = insertSignature(doc, SignatureHTML(row.Signature))

	return doc
}

func replaceTitles(doc string, row Row) string {
	titles := []struct {
		def   string
		token string
		value string
	}{
		{DefaultGeneralTitle, TokenGeneralTitle, row.GeneralTitle},
		{DefaultAccountManagementTitle, TokenAccountManagementTitle, row.AccountManagementTitle},
		{DefaultDesignatedEngineerTitle, TokenDesignatedEngineerTitle, row.DesignatedEngineerTitle},
		{DefaultSpecialNotesTitle, TokenSpecialNotesTitle, row.SpecialNotesTitle},
	}
	for _, t := range titles {
		escaped := html.EscapeString(t.value)
		doc = strings.ReplaceAll(doc, ">"+t.def+"<", ">"+escaped+"<")
		doc = strings.ReplaceAll(doc, t.token, escaped)
	}
	return doc
}

// CleanValue trims raw, strips encoding artifacts and turns '+' into spaces.
func CleanValue(raw string) string {
	s := sanitizer.StripArtifacts(strings.TrimSpace(raw))
	return strings.ReplaceAll(s, "+", " ")
}

// SectionHTML renders a section body. Values starting with '<' are treated
// as markup and returned as is; anything else becomes a bullet list with one
// escaped item per non-blank line.
func SectionHTML(raw string) string {
	content := CleanValue(raw)
	if strings.HasPrefix(content, "<") {
		return content
	}

	var b strings.Builder
	for _, line := range strings.FieldsFunc(content, isLineBreak) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</li>")
	}
	if b.Len() == 0 {
		return ""
	}
	return "<ul>" + b.String() + "</ul>"
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// CustomSectionsHTML renders each section as a header row and a body row.
// Sections whose cleaned content is empty are left out.
func CustomSectionsHTML(sections []CustomSection) string {
	var b strings.Builder
	for _, s := range sections {
		content := SectionHTML(s.Content)
		if content == "" {
			continue
		}
		b.WriteString("\n<tr>\n  ")
		b.WriteString(customHeaderCell)
		b.WriteString(html.EscapeString(s.Title))
		b.WriteString("</td>\n</tr>\n<tr>\n  ")
		b.WriteString(customBodyCell)
		b.WriteString(content)
		b.WriteString("</td>\n</tr>")
	}
	return b.String()
}

func insertCustomSections(doc, fragment, notesTitle string) string {
	if strings.Contains(doc, TokenCustomSections) {
		return strings.ReplaceAll(doc, TokenCustomSections, fragment)
	}
	if fragment == "" {
		return doc
	}

	if at := specialNotesRowEnd(doc, notesTitle); at >= 0 {
		return doc[:at] + fragment + doc[at:]
	}
	if at := strings.LastIndex(doc, "</table>"); at >= 0 {
		return doc[:at] + fragment + doc[at:]
	}
	return doc
}

// specialNotesRowEnd returns the offset right after the Special Notes content
// row: the second </tr> following the anchor. The anchor is the literal
// heading text, or the renamed heading when the user changed it.
func specialNotesRowEnd(doc, notesTitle string) int {
	const rowEnd = "</tr>"

	start := strings.Index(doc, SpecialNotesAnchor)
	if start < 0 && notesTitle != "" && notesTitle != DefaultSpecialNotesTitle {
		start = strings.Index(doc, ">"+html.EscapeString(notesTitle)+"<")
	}
	if start < 0 {
		return -1
	}

	header := strings.Index(doc[start:], rowEnd)
	if header < 0 {
		return -1
	}
	header += start + len(rowEnd)

	content := strings.Index(doc[header:], rowEnd)
	if content < 0 {
		return -1
	}
	return header + content + len(rowEnd)
}

// SignatureHTML cleans a signature and styles its paragraphs without spacing.
// It returns an empty string for an empty signature.
func SignatureHTML(raw string) string {
	sig := CleanValue(raw)
	if sig == "" {
		return ""
	}
	if strings.HasPrefix(sig, "<") {
		return strings.ReplaceAll(sig, "<p>", signatureParagraph)
	}
	return signatureParagraph + html.EscapeString(sig) + "</p>"
}

func insertSignature(doc, signature string) string {
	if signature == "" {
		return strings.ReplaceAll(doc, TokenSignature, "")
	}

	block := signatureWrapper + signature + "</div>"
	switch {
	case strings.Contains(doc, TokenSignature):
		return strings.ReplaceAll(doc, TokenSignature, block)
	case strings.Contains(doc, "</body>"):
		return strings.ReplaceAll(doc, "</body>", block+"</body>")
	default:
		return doc + block
	}
}
