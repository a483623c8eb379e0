// Package strx has small string helpers for host tools.
package strx

// Coalesce returns the first non-empty value, or "" if there is none.
func Coalesce(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
