// Package format holds the small display helpers shared by UI surfaces:
// relative-time strings, name initials, and truncation.
package format

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// RelativeTime renders t relative to now ("just now", "5m ago", "3d ago").
// Future timestamps are clamped to "just now".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h ago"
	case d < 7*24*time.Hour:
		return strconv.Itoa(int(d.Hours()/24)) + "d ago"
	default:
		return t.Format("2 Jan 2006")
	}
}

// Initials returns up to two uppercase initials from a full name.
// "Amina Yusuf" -> "AY", "Cher" -> "C", "" -> "".
func Initials(fullName string) string {
	var initials []rune
	for _, word := range strings.Fields(fullName) {
		for _, r := range word {
			initials = append(initials, unicode.ToUpper(r))
			break
		}
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut. max < 1 returns the empty string.
func Truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimRightFunc(string(runes[:max]), unicode.IsSpace) + "…"
}

