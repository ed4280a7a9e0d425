// internal/utils/like.go
package utils

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern wraps keyword in % for a LIKE/ILIKE substring match with
// the LIKE metacharacters escaped. Use it with ESCAPE '\'.
func ContainsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}
