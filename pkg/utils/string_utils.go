package utils

import "database/sql"

// NewNullString returns an invalid sql.NullString for empty input so optional
// columns are stored as NULL.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
