package util

import "time"

const ISO8601Format = "2006-01-02T15:04:05.000Z"

// TimeToISO8601Str formats t in UTC. The zero time yields "".
func TimeToISO8601Str(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISO8601Format)
}

func TimePtrToISO8601Str(t *time.Time) string {
	if t == nil {
		return ""
	}
	return TimeToISO8601Str(*t)
}

// ParseISO8601 is the inverse of TimeToISO8601Str; "" yields the zero time.
func ParseISO8601(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(ISO8601Format, s)
}
