package scheduler

import (
	"time"

	"github.com/kmazurov/fhmp/internal/errors"
	"github.com/kmazurov/fhmp/internal/models"
)

// Review intervals are quantized to a fixed ascending ladder of day counts.
var ladder = [...]float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144}

const day = 24 * time.Hour

// prematureFactor guards against inflating the schedule when a note is
// reviewed long before it was due: an "easy" outcome only grows the interval
// if at least this fraction of the planned interval has elapsed.
const prematureFactor = 0.6

// NextInterval computes the next review interval from the planned interval
// (nextReview - lastReview), the elapsed interval (now - lastReview) and the
// review outcome.
//
// "hard" steps one rung below the smallest ladder entry covering
// min(expected, actual), never below one day. "easy" steps to the smallest
// ladder entry strictly above max(expected, actual), saturating at the top
// rung, unless the review came prematurely, in which case the planned
// interval is kept as is.
//
// The function is pure; any result other than "hard" or "easy" is a
// programmer error and yields an INVALID_OUTCOME error.
func NextInterval(expected, actual time.Duration, result models.ReviewResult) (time.Duration, error) {
	switch result {
	case models.ReviewHard:
		d := min(expected, actual)
		return fromDays(previousRung(toDays(d))), nil
	case models.ReviewEasy:
		if float64(actual) < prematureFactor*float64(expected) {
			return expected, nil
		}
		d := max(expected, actual)
		return fromDays(nextRung(toDays(d))), nil
	default:
		return 0, errors.NewInvalidOutcomeError(string(result))
	}
}

func toDays(d time.Duration) float64 {
	return float64(d) / float64(day)
}

func fromDays(days float64) time.Duration {
	return time.Duration(days * float64(day))
}

// previousRung finds the smallest rung bounding d from above and steps back
// one, holding at the first rung.
func previousRung(d float64) float64 {
	for i, rung := range ladder {
		if rung >= d {
			if i == 0 {
				return ladder[0]
			}
			return ladder[i-1]
		}
	}
	// d is past the top rung; one step back from beyond the end.
	return ladder[len(ladder)-1]
}

// nextRung finds the smallest rung strictly greater than d, saturating at
// the last rung.
func nextRung(d float64) float64 {
	for _, rung := range ladder {
		if rung > d {
			return rung
		}
	}
	return ladder[len(ladder)-1]
}
