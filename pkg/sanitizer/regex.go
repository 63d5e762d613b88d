package sanitizer

import "regexp"

var (
	// Quoted-printable leftovers: "=" followed by two hex digits, then "=" followed by word characters.
	hexArtifactRegex  = regexp.MustCompile(`=[A-Fa-f0-9]{2}`)
	wordArtifactRegex = regexp.MustCompile(`=[\p{L}\p{N}_]+`)

	htmlTagRegex    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	blankLinesRegex = regexp.MustCompile(`\n\s*\n`)
)
