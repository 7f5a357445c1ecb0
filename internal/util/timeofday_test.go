// internal/util/timeofday_test.go
package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in         string
		hour, mins int
	}{
		{"9 PM", 21, 0},
		{"9:05 PM", 21, 5},
		{"09:05 pm", 21, 5},
		{"9 p.m.", 21, 0},
		{"12 AM", 0, 0},
		{"12:30 PM", 12, 30},
		{"21:05", 21, 5},
		{" 07:45 ", 7, 45},
		{"09", 9, 0},
		{"21", 21, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			require.NoError(t, err)
			assert.Equal(t, TimeOfDay{Hour: tt.hour, Minute: tt.mins}, got)
		})
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "later", "25:00", "13 PM", "9:5 PM", "21:65"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTimeOfDay(in)
			require.Error(t, err)
			assert.True(t, IsError(err, ErrInvalidInput))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "time", verr.Field)
		})
	}
}

func TestTimeOfDay_On(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	day := time.Date(2025, time.March, 14, 8, 12, 59, 123, loc)

	got := TimeOfDay{Hour: 21, Minute: 5}.On(day)

	assert.Equal(t, time.Date(2025, time.March, 14, 21, 5, 0, 0, loc), got)
}
