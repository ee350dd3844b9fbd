package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"12:00", 720},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseClock_Malformed(t *testing.T) {
	for _, in := range []string{"", "9:30", "24:00", "12:60", "ab:cd", "12-30", "12:3", "112:30"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
	assert.Equal(t, "00:30", FormatClock(MinutesPerDay+30))
	assert.Equal(t, "23:30", FormatClock(-30))
}

func TestRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 17 {
		parsed, err := ParseClock(FormatClock(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestClockToSeconds(t *testing.T) {
	secs, err := ClockToSeconds("01:01")
	require.NoError(t, err)
	assert.Equal(t, 3660, secs)
}
