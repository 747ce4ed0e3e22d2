package utils

import "time"

// Unix seconds everywhere in storage; convert at the edges.
func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds returns zero time for t<=0 so callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func UnixPtr(t time.Time) *int64 {
	u := t.Unix()
	return &u
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
