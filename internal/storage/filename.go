package storage

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ImageExtensions lists the accepted upload extensions (lowercase, no dot).
var ImageExtensions = []string{"png", "jpg", "jpeg", "gif"}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Ext returns the lowercase extension of name without the dot, or "".
func Ext(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// IsAllowedImage reports whether name carries an allowed image extension.
func IsAllowedImage(name string) bool {
	ext := Ext(name)
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// SecureFilename reduces name to a flat ASCII file name: accents are
// decomposed and dropped, path separators and whitespace collapse to "_",
// anything outside [A-Za-z0-9_.-] is removed and leading or trailing dots
// and underscores are trimmed. The result may be empty.
func SecureFilename(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, name)
	if err != nil {
		ascii = ""
	}
	ascii = strings.NewReplacer("/", " ", "\\", " ").Replace(ascii)
	ascii = strings.Join(strings.Fields(ascii), "_")
	ascii = unsafeChars.ReplaceAllString(ascii, "")
	return strings.Trim(ascii, "._")
}

// ImageName sanitizes an upload name while keeping its image extension,
// so "写真.PNG" becomes "upload.png" rather than an extensionless "PNG".
func ImageName(name string) string {
	ext := Ext(name)
	safe := SecureFilename(name)
	if ext == "" {
		return safe
	}
	if strings.ToLower(path.Ext(safe)) != "."+ext {
		stem := strings.Trim(strings.TrimSuffix(safe, path.Ext(safe)), "._")
		if stem == "" || strings.EqualFold(stem, ext) {
			stem = "upload"
		}
		return stem + "." + ext
	}
	if strings.TrimSuffix(safe, path.Ext(safe)) == "" {
		return "upload." + ext
	}
	return safe
}
