package sanitizer

import "strings"

// unsafeFilenameChars lists characters that are rejected by at least one
// mainstream filesystem.
const unsafeFilenameChars = `\/:*?"<>|`

var filenameReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, len(unsafeFilenameChars)*2)
	for _, c := range unsafeFilenameChars {
		pairs = append(pairs, string(c), "_")
	}
	return strings.NewReplacer(pairs...)
}()

// Filename replaces each of \ / : * ? " < > | with an underscore and trims
// leading and trailing whitespace.
func Filename(name string) string {
	return strings.TrimSpace(filenameReplacer.Replace(name))
}

// FileStem returns Filename(name) with every whitespace run collapsed into a
// single underscore.
func FileStem(name string) string {
	return whitespaceRegex.ReplaceAllString(Filename(name), "_")
}
