package apps

import (
	"strings"

	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/rs/zerolog"
)

// IgnoreList decides which apps a discovery run leaves alone. Entries are
// normalized on construction, so "Bartender" and "bartender" are the same
// entry.
type IgnoreList struct {
	entries []string
	logger  zerolog.Logger
}

// NewIgnoreList builds an IgnoreList from raw user entries. Entries that
// normalize to the empty string are dropped.
func NewIgnoreList(entries []string) *IgnoreList {
	il := &IgnoreList{logger: logging.GetLogger("apps.ignore")}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		n := Normalize(e)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		il.entries = append(il.entries, n)
	}
	return il
}

// Entries returns the normalized entries in insertion order.
func (il *IgnoreList) Entries() []string {
	if il == nil {
		return nil
	}
	return append([]string(nil), il.entries...)
}

// Len returns the number of entries.
func (il *IgnoreList) Len() int {
	if il == nil {
		return 0
	}
	return len(il.entries)
}

// Matches reports whether a normalized app name is ignored: either it equals
// an entry, or it is "<entry>-<suffix>" so that ignoring "bartender" also
// covers "bartender-5".
func (il *IgnoreList) Matches(normalizedName string) bool {
	if il == nil || normalizedName == "" {
		return false
	}
	for _, entry := range il.entries {
		if normalizedName == entry || strings.HasPrefix(normalizedName, entry+"-") {
			il.logger.Debug().
				Str("app", normalizedName).
				Str("entry", entry).
				Msg("App ignored")
			return true
		}
	}
	return false
}
