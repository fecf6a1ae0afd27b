package shared

import (
	"fmt"
	"time"
)

// Clock provides the current time. Use RealClock in production and
// FixedClock in tests that check time-dependent output.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock returns a preset time. Tests move it by assigning T.
type FixedClock struct {
	T time.Time
}

// Now returns the preset time.
func (c *FixedClock) Now() time.Time { return c.T }

// FormatRelativeTime renders how long ago t was, relative to now.
// Examples: "now", "5m ago", "3h ago", "2d ago", "1w ago", "3mo ago",
// "1y ago". Future timestamps come out as "now".
func FormatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		return "now"
	}

	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 4*7*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}
