package searchui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, 10, 16, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "Just now"},
		{"future", -2 * time.Minute, "Just now"},
		{"one minute", time.Minute, "1 min ago"},
		{"minutes", 5 * time.Minute, "5 mins ago"},
		{"just under an hour", 59*time.Minute + 59*time.Second, "59 mins ago"},
		{"ninety minutes", 90 * time.Minute, "1 hour ago"},
		{"hours", 5 * time.Hour, "5 hours ago"},
		{"just under a day", 23*time.Hour + 59*time.Minute, "23 hours ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelative(now.Add(-tt.ago), now, time.UTC))
		})
	}
}

func TestFormatRelativeOlderThanADay(t *testing.T) {
	now := time.Date(2026, 10, 16, 14, 5, 0, 0, time.UTC)

	got := FormatRelative(now.Add(-72*time.Hour), now, time.UTC)

	assert.Equal(t, "13 Oct, 14:05", got)
	assert.NotContains(t, got, "ago")
}

func TestFormatRelativeUsesLocation(t *testing.T) {
	dublin := DefaultLocation()
	if dublin == time.UTC {
		t.Skip("tzdata not available")
	}
	now := time.Date(2026, 7, 20, 9, 0, 0, 0, time.UTC)

	// 2026-07-15 08:30 UTC is 09:30 Irish Summer Time
	got := FormatRelative(time.Date(2026, 7, 15, 8, 30, 0, 0, time.UTC), now, dublin)

	assert.Equal(t, "15 Jul, 09:30", got)
}

func TestParseTimestamp(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-10-16T11:30:00Z", time.Date(2026, 10, 16, 11, 30, 0, 0, time.UTC)},
		{"2026-10-16T11:30:00.123456", time.Date(2026, 10, 16, 11, 30, 0, 123456000, time.UTC)},
		{"2026-10-16T12:30:00+01:00", time.Date(2026, 10, 16, 11, 30, 0, 0, time.UTC)},
		{"2026-10-16 11:30:00", time.Date(2026, 10, 16, 11, 30, 0, 0, time.UTC)},
		{"2026-10-16", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in, loc)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseTimestampBareDateIsUTC(t *testing.T) {
	dublin := DefaultLocation()
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	for _, loc := range []*time.Location{dublin, ny} {
		got, ok := ParseTimestamp("2024-07-01", loc)
		require.True(t, ok)
		assert.True(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC).Equal(got), "got %s in %s", got, loc)
	}

	// A zone-less date-time still reads in loc.
	got, ok := ParseTimestamp("2024-07-01 09:00:00", ny)
	require.True(t, ok)
	assert.True(t, time.Date(2024, 7, 1, 13, 0, 0, 0, time.UTC).Equal(got), "got %s", got)
}

func TestFormatTimestampInvalid(t *testing.T) {
	now := time.Now()
	assert.Equal(t, InvalidDate, FormatTimestamp("", now, time.UTC))
	assert.Equal(t, InvalidDate, FormatTimestamp("yesterday-ish", now, time.UTC))
}
