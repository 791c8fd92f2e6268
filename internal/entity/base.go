package entity

import "time"

// DateLayout is the wire format for calendar dates (ISO calendar date).
const DateLayout = "2006-01-02"

// NowUnixMilli returns current unix timestamp in milliseconds
func NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// ParseDate parses an ISO calendar date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
