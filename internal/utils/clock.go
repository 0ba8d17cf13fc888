// Package utils provides timezone helpers and input normalization shared
// across the service and handler layers.  All future/past comparisons in
// the application are funnelled through this package so that exactly one
// canonical timezone (IST, Asia/Kolkata) is used everywhere.
package utils

import "time"

// ist is the canonical comparison timezone.  Class times are stored in
// UTC in the database; they are converted to IST only for comparison
// against "now" and for display.  Loading the named zone keeps DST rules
// correct should they ever change; the fixed offset is the fallback when
// the host has no tzdata.
var ist = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// NowIST returns the current time in IST.
func NowIST() time.Time {
	return time.Now().In(ist)
}

// ToIST converts a timestamp to IST.  Go timestamps always carry a
// location, so unlike naive-datetime languages no "assume local" branch
// is needed here.
func ToIST(t time.Time) time.Time {
	return t.In(ist)
}

// IsFuture reports whether the given class time is strictly in the
// future relative to the IST clock.  Past and currently running classes
// are not bookable.
func IsFuture(t time.Time) bool {
	return ToIST(t).After(NowIST())
}

// FormatIST renders a timestamp for human-readable display.
func FormatIST(t time.Time) string {
	return ToIST(t).Format("2006-01-02 15:04 MST")
}
