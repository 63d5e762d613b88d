package rollup

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// MaxCustomSections is the number of custom section slots read per row.
const MaxCustomSections = 20

// Default section headings as they appear in the template.
const (
	DefaultGeneralTitle            = "General"
	DefaultAccountManagementTitle  = "Account Management"
	DefaultDesignatedEngineerTitle = "Designated Engineer(s)"
	DefaultSpecialNotesTitle       = "Special Notes"
)

var customerKeyRegex = regexp.MustCompile(`^CustomerName_(\d+)$`)

// Row is one customer's submitted values.
type Row struct {
	Index int

	CustomerName       string
	Contacts           string
	AccountTeam        string
	AdditionalContacts string

	GeneralTitle            string
	AccountManagementTitle  string
	DesignatedEngineerTitle string
	SpecialNotesTitle       string

	DiscussionTopics   string
	AccountManagement  string
	DesignatedEngineer string
	SpecialNotes       string

	CustomSections []CustomSection
	Signature      string
}

// CustomSection is a user-defined titled block rendered below Special Notes.
type CustomSection struct {
	Slot    int
	Title   string
	Content string
}

// Blank reports whether the row has no customer name and must be skipped.
func (r Row) Blank() bool {
	return strings.TrimSpace(r.CustomerName) == ""
}

// ParseRows collects every row announced by a CustomerName_<n> key, ordered
// by ascending index. Blank rows are returned too; callers decide whether to
// skip them.
func ParseRows(values url.Values) []Row {
	seen := make(map[int]struct{})
	indices := make([]int, 0)
	for key := range values {
		m := customerKeyRegex.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}
	slices.Sort(indices)

	rows := make([]Row, 0, len(indices))
	for _, idx := range indices {
		rows = append(rows, RowFromValues(values, idx))
	}
	return rows
}

// RowFromValues reads the row with the given index. Scalars and titles are
// trimmed. Section bodies and the signature are kept raw; Resolve cleans them.
func RowFromValues(values url.Values, idx int) Row {
	get := func(name string) string {
		return values.Get(fmt.Sprintf("%s_%d", name, idx))
	}
	title := func(name, def string) string {
		key := fmt.Sprintf("%s_%d", name, idx)
		if !values.Has(key) {
			return def
		}
		return strings.TrimSpace(values.Get(key))
	}

	row := Row{
		Index:              idx,
		CustomerName:       strings.TrimSpace(get("CustomerName")),
		Contacts:           strings.TrimSpace(get("ASContacts")),
		AccountTeam:        strings.TrimSpace(get("AccountTeamContacts")),
		AdditionalContacts: strings.TrimSpace(get("AdditionalContacts")),

		GeneralTitle:            title("GeneralTitle", DefaultGeneralTitle),
		AccountManagementTitle:  title("AccountMgmtTitle", DefaultAccountManagementTitle),
		DesignatedEngineerTitle: title("DesignatedEngTitle", DefaultDesignatedEngineerTitle),
		SpecialNotesTitle:       title("SpecialNotesTitle", DefaultSpecialNotesTitle),

		DiscussionTopics:   get("DiscussionTopics"),
		AccountManagement:  get("AccountManagement"),
		DesignatedEngineer: get("DesignatedEngineer"),
		SpecialNotes:       get("SpecialNotes"),

		Signature: get("Signature"),
	}

	for slot := 1; slot <= MaxCustomSections; slot++ {
		t := strings.TrimSpace(get(fmt.Sprintf("CustomSection%dTitle", slot)))
		c := strings.TrimSpace(get(fmt.Sprintf("CustomSection%d", slot)))
		if t == "" || c == "" {
			continue
		}
		row.CustomSections = append(row.CustomSections, CustomSection{Slot: slot, Title: t, Content: c})
	}

	return row
}
