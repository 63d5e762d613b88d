// Package draft writes offline email drafts as .eml files.
//
// A draft carries an "X-Unsent: 1" header, which makes Outlook and
// Thunderbird open it as an editable message instead of a received one.
// Drafts are never transmitted: the package has no transport.
//
//	path, err := draft.Assemble("out/Acme_01-15-2024.eml", draft.Message{
//		To:      "jane@acme.test",
//		Cc:      "team@example.com; nosend",
//		Subject: "Acme Weekly Rollup 01-15-2024",
//		HTML:    doc,
//	})
//
// Both the plain text and the HTML part are written with 8bit transfer
// encoding so the files stay readable and diffable. Read parses a draft back.
package draft
