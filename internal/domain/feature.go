package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// fold maps full-width forms ("＃", ideographic space, "ｃｕｔｅ") to their
// canonical ASCII width and drops every whitespace rune.
func fold(s string) string {
	s = width.Fold.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Tags splits a raw hashtag string into its non-empty tags.
//
//	Tags("＃cute ＃idol") // ["cute", "idol"]
func Tags(raw string) []string {
	parts := strings.Split(fold(raw), "#")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CanonicalFeature renders raw hashtags in the stored "#a#b#" form. A string
// without any tag yields "".
func CanonicalFeature(raw string) string {
	tags := Tags(raw)
	if len(tags) == 0 {
		return ""
	}
	return "#" + strings.Join(tags, "#") + "#"
}

// FilterTag normalizes a search term the same way stored features are
// normalized and trims surrounding '#'. An empty result means "no filter".
func FilterTag(raw string) string {
	return strings.Trim(fold(raw), "#")
}
