package util

import (
    "strconv"
    "time"
)

// isoNoZone matches ISO-8601 timestamps without a zone designator. The gamma
// API usually sends 'Z'-suffixed RFC3339, but older markets omit the zone.
const isoNoZone = "2006-01-02T15:04:05"

// ParseTime tries RFC3339, RFC3339Nano, zoneless ISO-8601, and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(isoNoZone, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}
