// file: internals/helpers/search.go
package helper

import "strings"

var likeEscaper = strings.NewReplacer("\\", "\\\\", "%", "\\%", "_", "\\_")

// EscapeLike meloloskan wildcard LIKE; pasangkan dengan ESCAPE '\'.
func EscapeLike(s string) string { return likeEscaper.Replace(s) }

// ContainsPattern: pola "%term%" huruf kecil untuk LOWER(col) LIKE ? ESCAPE '\'.
func ContainsPattern(term string) string {
	return "%" + EscapeLike(strings.ToLower(term)) + "%"
}
