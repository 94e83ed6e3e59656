package domain

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// foldText transliterates to ASCII and lower-cases so that "Haryāna" and
// "HARYANA" both match the catalog's "Haryana".
func foldText(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

// matchIndexes returns the indexes of every folded name contained in text,
// in the order names are declared. Empty names never match.
func matchIndexes(foldedNames []string, text string) []int {
	folded := foldText(text)
	var idx []int
	for i, name := range foldedNames {
		if name != "" && strings.Contains(folded, name) {
			idx = append(idx, i)
		}
	}
	return idx
}
