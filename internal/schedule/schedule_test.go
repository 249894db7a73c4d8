package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftDate(t *testing.T) {
	tests := []struct {
		in   string
		days int
		want string
	}{
		{"2024-01-10", 30, "2024-02-09"},
		{"2024-01-10", 0, "2024-01-10"},
		{"2024-01-10", -10, "2023-12-31"},
		{"2024-02-28", 1, "2024-02-29"}, // leap year
		{"2024-01-15T00:00:00Z", 30, "2024-02-14"},
	}
	for _, tt := range tests {
		got, ok := ShiftDate(tt.in, tt.days)
		require.True(t, ok, "ShiftDate(%q, %d)", tt.in, tt.days)
		assert.Equal(t, tt.want, got)
	}
}

func TestShiftDateInvalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2024-13-99"} {
		_, ok := ShiftDate(in, 30)
		assert.False(t, ok, "input %q", in)
	}
}

// Shifting by a then b must equal shifting by a+b.
func TestShiftDateComposes(t *testing.T) {
	dates := []string{"2024-01-10", "2023-12-31", "2024-02-29"}
	offsets := []int{-40, -1, 0, 1, 30, 365}

	for _, d := range dates {
		for _, a := range offsets {
			for _, b := range offsets {
				first, ok := ShiftDate(d, a)
				require.True(t, ok)
				second, ok := ShiftDate(first, b)
				require.True(t, ok)
				direct, ok := ShiftDate(d, a+b)
				require.True(t, ok)
				assert.Equal(t, direct, second, "d=%s a=%d b=%d", d, a, b)
			}
		}
	}
}

func TestDiffDays(t *testing.T) {
	assert.Equal(t, 30, DiffDays("2024-02-09", "2024-01-10"))
	assert.Equal(t, 0, DiffDays("2024-01-10", "2024-01-10"))
	assert.Equal(t, -30, DiffDays("2024-01-10", "2024-02-09"))

	// Unparsable on either side leaves dates untouched.
	assert.Equal(t, 0, DiffDays("", "2024-01-10"))
	assert.Equal(t, 0, DiffDays("2024-02-09", "garbage"))
}
