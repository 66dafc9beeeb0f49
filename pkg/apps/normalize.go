package apps

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var versionSegment = regexp.MustCompile(`^v?\d+(\.\d+)*$`)

// foldDiacritics strips combining marks, so "Café" becomes "Cafe".
// transform.Chain keeps state, so a fresh chain is built per call.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize turns a display name into the hyphenated lowercase form used as
// an index key. Whitespace, '-' and '_' runs become a single hyphen, every
// other character outside [a-z0-9] is dropped, and leading and trailing
// hyphens are trimmed.
//
//	Normalize("Visual Studio Code") == "visual-studio-code"
//	Normalize("1Password 7")        == "1password-7"
//	Normalize("Café Räder.")        == "cafe-rader"
func Normalize(name string) string {
	folded := strings.ToLower(foldDiacritics(name))

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingHyphen = true
		}
	}
	return b.String()
}

// CompactName removes every hyphen from an already normalized name.
func CompactName(normalized string) string {
	return strings.ReplaceAll(normalized, "-", "")
}

// PackageNameVariant derives the package name an app is likely published
// under by dropping trailing version segments from its normalized name.
// At least one segment is always kept.
//
//	PackageNameVariant("bartender-5")     == "bartender"
//	PackageNameVariant("parallels-v18-2") == "parallels"
//	PackageNameVariant("1password")       == "1password"
func PackageNameVariant(normalized string) string {
	parts := strings.Split(normalized, "-")
	for len(parts) > 1 && versionSegment.MatchString(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "-")
}

// StripBundleSuffix removes a trailing ".app" (any case) from a bundle
// filename and any directory components before it.
func StripBundleSuffix(filename string) string {
	if i := strings.LastIndex(filename, "/"); i >= 0 {
		filename = filename[i+1:]
	}
	if len(filename) >= 4 && strings.EqualFold(filename[len(filename)-4:], ".app") {
		return filename[:len(filename)-4]
	}
	return filename
}
