package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. Matching is textual; it covers both the Postgres and
// the sqlite phrasing.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
