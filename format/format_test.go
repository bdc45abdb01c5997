package format_test

import (
	"testing"
	"time"

	"github.com/classpoint/classpoint-go/format"
	"github.com/stretchr/testify/require"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("under a minute", func(t *testing.T) {
		require.Equal(t, "just now", format.RelativeTime(now.Add(-30*time.Second), now))
	})

	t.Run("minutes", func(t *testing.T) {
		require.Equal(t, "5m ago", format.RelativeTime(now.Add(-5*time.Minute), now))
	})

	t.Run("hours", func(t *testing.T) {
		require.Equal(t, "3h ago", format.RelativeTime(now.Add(-3*time.Hour), now))
	})

	t.Run("days", func(t *testing.T) {
		require.Equal(t, "2d ago", format.RelativeTime(now.Add(-49*time.Hour), now))
	})

	t.Run("older than a week uses a date", func(t *testing.T) {
		require.Equal(t, "15 Feb 2025", format.RelativeTime(now.Add(-14*24*time.Hour), now))
	})

	t.Run("future timestamps clamp to just now", func(t *testing.T) {
		require.Equal(t, "just now", format.RelativeTime(now.Add(time.Hour), now))
	})
}

func TestInitials(t *testing.T) {
	require.Equal(t, "AY", format.Initials("Amina Yusuf"))
	require.Equal(t, "C", format.Initials("Cher"))
	require.Equal(t, "JK", format.Initials("joseph kimani mwangi"))
	require.Equal(t, "", format.Initials(""))
	require.Equal(t, "AB", format.Initials("  anna   banda  "))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", format.Truncate("short", 10))
	require.Equal(t, "exactly ten", format.Truncate("exactly ten", 11))
	require.Equal(t, "trunc…", format.Truncate("truncated", 5))
	require.Equal(t, "trailing…", format.Truncate("trailing  spaces", 10))
	require.Equal(t, "", format.Truncate("anything", 0))
}
