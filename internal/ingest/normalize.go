package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The upstream spreadsheet export double-encodes umlauts (UTF-8 read as
// Latin-1). These are the sequences observed in real exports.
var mojibake = strings.NewReplacer(
	"Ã¤", "ä",
	"Ã¶", "ö",
	"Ã¼", "ü",
	"ÃŸ", "ß",
	"Ã„", "Ä",
	"Ã–", "Ö",
	"Ãœ", "Ü",
)

// FixEncoding repairs known mojibake sequences in a source string.
func FixEncoding(s string) string {
	return mojibake.Replace(s)
}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// StripDiacritics removes combining marks: "Münster" becomes "Munster".
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeName canonicalizes an area name for matching: mojibake repaired,
// diacritics stripped, case-folded, whitespace trimmed. Linking tolerates
// encoding drift between the geometry rows and the forArea column this way.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(StripDiacritics(FixEncoding(s))))
}
