// Package rollup turns submitted form values into per-customer HTML documents.
//
// ParseRows extracts the customer rows from a form submission. Keys are
// suffixed with the row index (CustomerName_0, ASContacts_0, ...). Resolve
// substitutes a row into the shared HTML template:
//
//	rows := rollup.ParseRows(r.PostForm)
//	for _, row := range rows {
//		if row.Blank() {
//			continue
//		}
//		doc := rollup.Resolve(tmpl, row, "01-15-2024")
//		...
//	}
//
// Templates address values with {{Token}} placeholders. Section headings are
// located by their default text (">General<", ">Special Notes<", ...), so
// templates written for the headings keep working without dedicated tokens.
// Custom sections are spliced after the Special Notes content row unless the
// template carries a {{CustomSections}} token.
package rollup
