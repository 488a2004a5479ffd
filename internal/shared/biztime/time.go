// Package biztime centralizes time handling. All storage and transport use
// UTC; implicit local timezone is prohibited.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FallbackTitleStamp formats a timestamp the way synthetic artifact titles
// expect it, e.g. "Chronicle 2026-08-31 14:02".
func FallbackTitleStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
