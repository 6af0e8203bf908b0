package utils

import (
	"fmt"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used by the sales filters.
const DateLayout = "2006-01-02"

// ParseDateParam validates an optional YYYY-MM-DD query value.
// An empty string is not an error and yields nil.
func ParseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return &t, nil
}
