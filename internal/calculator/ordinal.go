package calculator

import "time"

// unixEpochOrdinal is the day number of 1970-01-01 when 0001-01-01 is day 1.
const unixEpochOrdinal = 719163

const secondsPerDay = 24 * 60 * 60

// DateToOrdinal converts the calendar date of t (in t's own location) into a
// proleptic Gregorian day number. The time of day is ignored.
func DateToOrdinal(t time.Time) int64 {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return midnight.Unix()/secondsPerDay + unixEpochOrdinal
}

// OrdinalToDate is the inverse of DateToOrdinal; the result is midnight UTC.
func OrdinalToDate(ordinal int64) time.Time {
	return time.Unix((ordinal-unixEpochOrdinal)*secondsPerDay, 0).UTC()
}
