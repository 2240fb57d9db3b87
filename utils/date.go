package utils

import "time"

const PostTimeLayout = "Jan 2, 2006 3:04 PM"

func FromUTCToTimezone(utcTime time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return utcTime
	}
	return utcTime.In(loc)
}

// FormatPostTime renders a post timestamp in the given timezone, or in the
// process local zone when timezone is empty.
func FormatPostTime(t time.Time, timezone string) string {
	if t.IsZero() {
		return ""
	}
	if timezone == "" {
		return t.Local().Format(PostTimeLayout)
	}
	return FromUTCToTimezone(t, timezone).Format(PostTimeLayout)
}
