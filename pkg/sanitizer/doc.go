// Package sanitizer cleans user input before it reaches file names or
// generated message bodies.
//
// Filename replaces characters that are illegal in file names on common
// filesystems and trims surrounding whitespace. FileStem additionally folds
// whitespace runs into underscores so the result can be joined with other
// fragments:
//
//	sanitizer.Filename(`Acme: "East" / West`) // Acme_ _East_ _ West
//	sanitizer.FileStem("Acme Corp")          // Acme_Corp
//
// StripArtifacts removes the quoted-printable leftovers (=3D, =20, =ab...)
// that appear when text is pasted from mail clients, and StripTags drops
// markup when a plain text rendition is needed.
//
// None of these helpers make a value safe for HTML output or guard against
// path traversal. Escape HTML separately and confine paths with the storage
// layer.
package sanitizer
