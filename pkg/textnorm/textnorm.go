// Package textnorm normaliza nombres de productos y materiales escritos con distintas variantes
// de apóstrofo (Ko'ylak, Koʻylak, Ko‘ylak, Ko`ylak) o en distinta forma Unicode.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer(
	"ʻ", "'", // ʻ modifier letter turned comma
	"ʼ", "'", // ʼ
	"‘", "'", // ‘
	"’", "'", // ’
	"`", "'",
	"´", "'", // ´
)

var folder = cases.Fold()

// Name forma canónica para almacenar y buscar: NFC, apóstrofo ASCII, espacios colapsados.
func Name(s string) string {
	s = norm.NFC.String(s)
	s = apostrophes.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Key clave de comparación sin distinción de mayúsculas.
func Key(s string) string {
	return folder.String(Name(s))
}

// Equal compara dos nombres por su clave.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
