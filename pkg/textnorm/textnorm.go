// Package textnorm normaliza texto para búsquedas sin distinguir mayúsculas ni acentos.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold pasa a minúsculas y quita marcas diacríticas ("Bạc đạn" -> "bac dan").
// La đ vietnamita no es una marca combinante y se mapea aparte a d.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
	return strings.ToLower(strings.TrimSpace(out))
}

// Contains indica si needle aparece en alguno de los campos tras normalizar.
// Un needle vacío coincide siempre.
func Contains(needle string, fields ...string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), n) {
			return true
		}
	}
	return false
}
