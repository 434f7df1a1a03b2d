// Package biztime centralizes time access for the workflow core.
// All storage and transport use UTC; implicit Local timezone is prohibited.
package biztime

import "time"

// NowUTC returns the current time in UTC truncated to millisecond precision,
// matching the persistence layer's millisecond timestamps.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FromUnixMilli converts a millisecond timestamp to a UTC time.
func FromUnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ToUnixMilli converts a time to a millisecond timestamp.
func ToUnixMilli(t time.Time) int64 {
	return t.UnixMilli()
}

// FromUnixMilliPtr converts an optional millisecond timestamp.
func FromUnixMilliPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := FromUnixMilli(*ms)
	return &t
}

// ToUnixMilliPtr converts an optional time.
func ToUnixMilliPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
