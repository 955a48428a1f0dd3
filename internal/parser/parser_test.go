package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/balkashynov/wrokout/internal/timer"
)

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"90", 90},
		{"90s", 90},
		{"2m", 120},
		{"1m30s", 90},
		{"1m30", 90},
		{"1:30", 90},
		{" 45S ", 45},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeconds(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "abc", "1h", "-5", "1:75", "m"} {
		_, err := ParseSeconds(bad)
		require.Error(t, err, bad)
	}
}

func TestFormatSecondsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 3599).Draw(t, "seconds")
		got, err := ParseSeconds(FormatSeconds(n))
		require.NoError(t, err)
		require.Equal(t, n, got)
	})
	require.Equal(t, "1:01:05", FormatSeconds(3665))
}

func TestParseWeekday(t *testing.T) {
	for input, want := range map[string]int{"": 0, "any": 0, "Mon": 1, "thursday": 4, "7": 7} {
		got, err := ParseWeekday(input)
		require.NoError(t, err)
		require.Equal(t, want, got, input)
	}
	_, err := ParseWeekday("8")
	require.Error(t, err)
	require.Equal(t, "Sun", WeekdayName(7))
	require.Equal(t, "any", WeekdayName(0))
}

func TestParseTimerSpec(t *testing.T) {
	tests := []struct {
		input string
		want  timer.Config
	}{
		{"stopwatch", timer.Stopwatch()},
		{"countdown 90", timer.Countdown(90)},
		{"rest 1m", timer.Rest(60)},
		{"AMRAP 12m", timer.AMRAP(720)},
		{"emom 60x10", timer.EMOM(60, 10)},
		{"emom 1m x 5", timer.EMOM(60, 5)},
		{"tabata 20/10x8", timer.Tabata(20, 10, 8)},
		{"tabata", timer.Tabata(20, 10, 8)},
		{"tabata 40s/20s x4", timer.Tabata(40, 20, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimerSpec(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimerSpec_Errors(t *testing.T) {
	_, err := ParseTimerSpec("countdown 0")
	require.ErrorIs(t, err, timer.ErrInvalidConfig)

	_, err = ParseTimerSpec("emom 60x0")
	require.ErrorIs(t, err, timer.ErrInvalidConfig)

	for _, bad := range []string{"", "lap 10", "emom 60", "tabata 20x8", "countdown"} {
		_, err := ParseTimerSpec(bad)
		require.Error(t, err, bad)
	}
}

func TestParseExercise(t *testing.T) {
	got := ParseExercise("Bench press 3x5 @80kg rest:90s day:mon")
	require.Empty(t, got.Errors)
	require.Equal(t, "Bench press", got.Name)
	require.Equal(t, 3, got.Sets)
	require.Equal(t, 5, got.Reps)
	require.Equal(t, 80.0, got.WeightKg)
	require.NotNil(t, got.RestSeconds)
	require.Equal(t, 90, *got.RestSeconds)
	require.Equal(t, 1, got.DayOfWeek)

	plain := ParseExercise("  Plank   ")
	require.Equal(t, "Plank", plain.Name)
	require.Nil(t, plain.RestSeconds)
	require.Zero(t, plain.Sets)

	lb := ParseExercise("Curl 3x12 @20lb")
	require.InDelta(t, 9.07, lb.WeightKg, 0.01)

	bad := ParseExercise("Row 0x8 rest:soon day:someday")
	require.Len(t, bad.Errors, 3)
	require.Equal(t, "Row", bad.Name)
}
