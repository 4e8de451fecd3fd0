// Package biztime provides the canonical clock for business logic.
// All storage and transport use UTC; every temporal comparison in the
// token and subscription lifecycles goes through NowUTC so tests can
// reason about a single "now".
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// EndOfDuration returns now plus d, truncated to second precision. Second
// precision matches what the JWT exp claim and the database columns store.
func EndOfDuration(now time.Time, d time.Duration) time.Time {
	return now.Add(d).Truncate(time.Second)
}
