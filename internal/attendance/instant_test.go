package attendance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstant(t *testing.T) {
	want := time.Date(2021, 3, 15, 10, 2, 35, 0, time.UTC)

	tests := []struct {
		input string
		valid bool
	}{
		{"3/15/2021, 10:02:35 AM", true},
		{"3/15/2021 10:02:35 AM", true},
		{"03/15/2021 10:02:35", true},
		{"2021-03-15 10:02:35", true},
		{"2021-03-15T10:02:35", true},
		{"2021-03-15T10:02:35Z", true},
		{"  2021-03-15 10:02:35  ", true},
		{"Mar 15, 2021 10:02:35 AM", true},
		{"", false},
		{"not a time", false},
		{"99/99/2021, 10:00:00 AM", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseInstant(tt.input)
			assert.Equal(t, tt.valid, got.Valid())
			if tt.valid {
				ts, ok := got.Time()
				require.True(t, ok)
				assert.True(t, ts.Equal(want), "got %v", ts)
			}
		})
	}
}

func TestParseInstant_LocaleVariants(t *testing.T) {
	utc := func(y int, m time.Month, d, h, min, sec int) time.Time {
		return time.Date(y, m, d, h, min, sec, 0, time.UTC)
	}

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"day first", "15/03/2021, 10:00:00", utc(2021, 3, 15, 10, 0, 0)},
		{"day first without comma", "15/03/2021 10:00:00", utc(2021, 3, 15, 10, 0, 0)},
		{"day first 12h", "15/03/2021, 10:00:00 PM", utc(2021, 3, 15, 22, 0, 0)},
		{"ambiguous reads month first", "03/04/2021 10:00:00", utc(2021, 3, 4, 10, 0, 0)},
		{"dotted day first", "15.03.2021 10:00:00", utc(2021, 3, 15, 10, 0, 0)},
		{"dotted ambiguous reads month first", "03.04.2021 10:00:00", utc(2021, 3, 4, 10, 0, 0)},
		{"two digit year", "3/15/21, 10:00:00 AM", utc(2021, 3, 15, 10, 0, 0)},
		{"two digit year day first", "15/3/21 10:00:00", utc(2021, 3, 15, 10, 0, 0)},
		{"two digit year last century", "3/15/99, 10:00:00 AM", utc(1999, 3, 15, 10, 0, 0)},
		{"offset with space", "2021-03-15 10:00:00+01:00", utc(2021, 3, 15, 9, 0, 0)},
		{"offset with space and fraction", "2021-03-15 10:00:00.5-02:00", time.Date(2021, 3, 15, 12, 0, 0, 5e8, time.UTC)},
		{"utc designator with space", "2021-03-15 10:00:00Z", utc(2021, 3, 15, 10, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInstant(tt.input).Time()
			require.True(t, ok, "%q did not parse", tt.input)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseInstant_TwoDigitYearPivot(t *testing.T) {
	future := time.Now().Year() + TwoDigitYearPivot + 1
	input := fmt.Sprintf("1/2/%02d, 10:00:00 AM", future%100)

	got, ok := ParseInstant(input).Time()
	require.True(t, ok)
	assert.Equal(t, future-100, got.Year())
}

func TestInstant_Before(t *testing.T) {
	early := At(time.Date(2021, 1, 1, 9, 0, 0, 0, time.UTC))
	late := At(time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC))

	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))
	assert.False(t, early.Before(early))

	assert.True(t, Null().Before(early), "null sorts first")
	assert.False(t, early.Before(Null()))
	assert.False(t, Null().Before(Null()))
}

func TestInstant_Sub(t *testing.T) {
	early := At(time.Date(2021, 1, 1, 9, 0, 0, 0, time.UTC))
	late := At(time.Date(2021, 1, 1, 9, 2, 0, 0, time.UTC))

	assert.Equal(t, 120.0, late.Sub(early))
	assert.Equal(t, -120.0, early.Sub(late))
	assert.Equal(t, 0.0, late.Sub(Null()))
	assert.Equal(t, 0.0, Null().Sub(early))
	assert.Equal(t, 0.0, Null().Sub(Null()))
}

func TestInstant_String(t *testing.T) {
	assert.Equal(t, "", Null().String())
	assert.Equal(t, "2021-01-01T09:00:00Z", At(time.Date(2021, 1, 1, 9, 0, 0, 0, time.UTC)).String())
}
