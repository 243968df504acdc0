package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LexiconEntry is one record of the static dictionary dataset. It is never
// modified after the index is built and may be shared under two keys.
type LexiconEntry struct {
	Simplified  string   `json:"simplified"`
	Traditional string   `json:"traditional"`
	Pinyin      string   `json:"pinyin"`
	Glosses     []string `json:"definitions"`
}

// Keys returns the distinct normalized lookup keys of the entry, simplified first.
func (e *LexiconEntry) Keys() []string {
	var keys []string
	if k := NormalizeToken(e.Simplified); k != "" {
		keys = append(keys, k)
	}
	if k := NormalizeToken(e.Traditional); k != "" && (len(keys) == 0 || keys[0] != k) {
		keys = append(keys, k)
	}
	return keys
}

// NormalizeToken prepares a lookup token:
//   - trims leading/trailing whitespace
//   - composes to Unicode NFC so tone-marked pinyin and CJK compatibility
//     sequences compare equal regardless of input method
//
// Case is preserved.
func NormalizeToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	return norm.NFC.String(token)
}
