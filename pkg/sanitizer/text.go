package sanitizer

import "strings"

// StripArtifacts removes quoted-printable style leftovers from s.
// Hex escapes (=3D) are removed first, then any "=" followed by word
// characters (=sdf). Note that the second pass also eats unquoted attribute
// values such as width=100.
func StripArtifacts(s string) string {
	s = hexArtifactRegex.ReplaceAllString(s, "")
	return wordArtifactRegex.ReplaceAllString(s, "")
}

// StripTags removes anything that looks like a markup tag.
func StripTags(s string) string {
	return htmlTagRegex.ReplaceAllString(s, "")
}

// CollapseBlankLines folds runs of blank lines into a single empty line.
func CollapseBlankLines(s string) string {
	return blankLinesRegex.ReplaceAllString(s, "\n\n")
}

// basicEntities is applied in order; double-escaped input such as "&amp;lt;"
// decodes all the way to "<".
var basicEntities = [...][2]string{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
}

// UnescapeBasicEntities decodes the handful of entities editors commonly
// emit. Every other entity is left untouched.
func UnescapeBasicEntities(s string) string {
	for _, e := range basicEntities {
		s = strings.ReplaceAll(s, e[0], e[1])
	}
	return s
}
