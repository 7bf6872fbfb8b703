package scheduler_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmazurov/fhmp/internal/models"
	"github.com/kmazurov/fhmp/internal/scheduler"
)

const (
	hour = time.Hour
	day  = 24 * time.Hour
)

func next(t *testing.T, expected, actual time.Duration, result models.ReviewResult) time.Duration {
	t.Helper()
	got, err := scheduler.NextInterval(expected, actual, result)
	require.NoError(t, err)
	return got
}

func TestNextInterval(t *testing.T) {
	tests := []struct {
		name     string
		expected time.Duration
		actual   time.Duration
		result   models.ReviewResult
		want     time.Duration
	}{
		{"first review was easy", 0, 1 * hour, models.ReviewEasy, 1 * day},
		{"first review was hard", 0, 1 * hour, models.ReviewHard, 1 * day},
		{"first review after a long time was easy", 0, 300 * day, models.ReviewEasy, 144 * day},
		{"first review after a long time was hard", 0, 300 * day, models.ReviewHard, 1 * day},
		{"increase interval", 3 * day, 3*day + 12*hour, models.ReviewEasy, 5 * day},
		{"decrease interval", 3 * day, 3*day + 12*hour, models.ReviewHard, 2 * day},
		{"upper saturation", 144 * day, 144*day + 12*hour, models.ReviewEasy, 144 * day},
		{"lower saturation", 1 * day, 1*day + 12*hour, models.ReviewHard, 1 * day},
		{"premature review easy keeps the plan", 5 * day, 1 * day, models.ReviewEasy, 5 * day},
		{"premature review hard", 5 * day, 1 * day, models.ReviewHard, 1 * day},
		{"late-but-early hard lands one rung down", 5 * day, 2*day + 2*hour, models.ReviewHard, 2 * day},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := next(t, tt.expected, tt.actual, tt.result)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextInterval_UnknownResult(t *testing.T) {
	_, err := scheduler.NextInterval(day, day, models.ReviewResult("good"))
	assert.Error(t, err)

	_, err = scheduler.NextInterval(day, day, "")
	assert.Error(t, err)
}

// Hard outcomes never grow the schedule: the result is at most the smaller of
// the planned and elapsed intervals rounded up to a rung, and at least a day.
func TestNextInterval_HardRegresses(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		expected := time.Duration(rng.Int63n(int64(200 * day)))
		actual := time.Duration(rng.Int63n(int64(200 * day)))

		got := next(t, expected, actual, models.ReviewHard)

		assert.GreaterOrEqual(t, got, 1*day)
		shorter := min(expected, actual)
		if shorter > 1*day {
			assert.Less(t, got, shorter,
				"hard must step below min(expected, actual)=%v, got %v", shorter, got)
		}
	}
}

// Non-premature easy outcomes strictly grow the interval until the top rung.
func TestNextInterval_EasyGrows(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		expected := time.Duration(rng.Int63n(int64(100 * day)))
		actual := expected + time.Duration(rng.Int63n(int64(50*day)))

		got := next(t, expected, actual, models.ReviewEasy)

		longer := max(expected, actual)
		if longer < 144*day {
			assert.Greater(t, got, longer,
				"easy must step above max(expected, actual)=%v, got %v", longer, got)
		}
		assert.LessOrEqual(t, got, 144*day)
	}
}

// Premature easy reviews return the planned interval exactly.
func TestNextInterval_PrematureEasyKeepsPlan(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		expected := time.Duration(1 + rng.Int63n(int64(144*day)))
		actual := time.Duration(float64(expected) * 0.59)

		got := next(t, expected, actual, models.ReviewEasy)
		assert.Equal(t, expected, got)
	}
}

func TestNextInterval_Deterministic(t *testing.T) {
	a := next(t, 8*day, 9*day, models.ReviewEasy)
	b := next(t, 8*day, 9*day, models.ReviewEasy)
	assert.Equal(t, a, b)
}
