// Package slug builds DOM-safe anchor identifiers for owner sections.
package slug

import (
	"unicode"

	"github.com/valyala/bytebufferpool"
)

// Anchor lower-cases s and collapses every run of non-alphanumeric runes into
// a single '-', trimming dashes at both ends. The result is prefixed, e.g.
// Anchor("owner", "Mary Jo Smith") == "owner-mary-jo-smith".
func Anchor(prefix, s string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if prefix != "" {
		_, _ = buf.WriteString(prefix)
	}

	pendingDash := prefix != ""
	wrote := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash {
				_ = buf.WriteByte('-')
			}
			pendingDash = false
			wrote = true
			_, _ = buf.WriteString(string(unicode.ToLower(r)))
			continue
		}
		if wrote || prefix != "" {
			pendingDash = true
		}
	}

	return buf.String()
}
