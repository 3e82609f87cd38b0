package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain descompone (NFD), elimina las marcas diacríticas y recompone (NFC).
// transform.Chain es seguro para uso concurrente vía transform.String.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve s en minúsculas y sin acentos, para búsquedas insensibles
// a diacríticos ("ethyl" encuentra "Éthyl Maltol").
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		// Entrada no normalizable: se compara tal cual
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// Contains indica si s contiene substr comparando ambos plegados.
func Contains(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(substr))
}
