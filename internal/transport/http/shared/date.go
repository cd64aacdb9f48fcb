package shared

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts a calendar date in YYYY-MM-DD form and returns it
// normalized to midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseOptionalDate returns nil for an empty value.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
