package workload

import (
	"regexp"
	"strings"
)

// namedEntities covers the named HTML entities the portal actually emits:
// Spanish-accented letters plus &amp;, &lt;, &gt;, &quot; and &nbsp;.
// Anything else passes through unchanged.
var namedEntities = map[string]string{
	"&aacute;": "á", "&Aacute;": "Á",
	"&eacute;": "é", "&Eacute;": "É",
	"&iacute;": "í", "&Iacute;": "Í",
	"&oacute;": "ó", "&Oacute;": "Ó",
	"&uacute;": "ú", "&Uacute;": "Ú",
	"&ntilde;": "ñ", "&Ntilde;": "Ñ",
	"&amp;": "&", "&lt;": "<", "&gt;": ">", "&quot;": "\"", "&nbsp;": " ",
}

var entityPattern = regexp.MustCompile(`&[a-zA-Z]+;|&#\d+;`)

// decodeEntities replaces the known named entities for Spanish-accented
// letters plus &amp;, &lt;, &gt;, &quot; and &nbsp;; unknown entities
// (including every numeric one) pass through unchanged.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityPattern.ReplaceAllStringFunc(s, func(ent string) string {
		if repl, ok := namedEntities[ent]; ok {
			return repl
		}
		return ent
	})
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripTags removes every `<...>` span from s.
func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// collapseWhitespace collapses runs of whitespace (including newlines) to a
// single space and trims both ends.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// cellText composes decodeEntities, stripTags and collapseWhitespace in
// that order, the fixed pipeline every raw cell's HTML passes through
// before it is treated as data.
func cellText(cellHTML string) string {
	return collapseWhitespace(stripTags(decodeEntities(cellHTML)))
}

var accentFolder = strings.NewReplacer(
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ñ", "N",
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
)

// foldAccents maps Spanish-accented letters to their plain ASCII form. It is
// used everywhere a keyword match needs to tolerate both the accented and
// unaccented spelling of the same header.
func foldAccents(s string) string {
	return accentFolder.Replace(s)
}

// normalizeHeader upper-cases, trims, and collapses a raw header cell's
// text. Accents are preserved in the result; callers that need tolerant
// matching should additionally foldAccents before comparing.
func normalizeHeader(s string) string {
	return collapseWhitespace(strings.ToUpper(s))
}

// containsAnyFolded reports whether s (already normalized) contains any of
// the keywords, trying both the accented and unaccented spelling of each.
func containsAnyFolded(s string, keywords ...string) bool {
	folded := foldAccents(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) || strings.Contains(folded, foldAccents(kw)) {
			return true
		}
	}
	return false
}
