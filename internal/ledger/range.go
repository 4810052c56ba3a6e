package ledger

import (
	"fmt"
	"time"

	"github.com/fmansouri/pocketledger/internal/model"
)

// Range restricts history and stats views to a trailing window.
type Range string

// Supported ranges.
const (
	RangeAll   Range = "all"
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// ParseRange converts a user-supplied range name.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case RangeAll, RangeDay, RangeWeek, RangeMonth:
		return Range(s), nil
	case "":
		return RangeAll, nil
	default:
		return "", fmt.Errorf("unknown range %q (want all, day, week or month)", s)
	}
}

// inRange reports whether a record dated dateStr falls inside rng as
// observed at now. Records lacking a parseable date belong to every
// "all" view and to no bounded view. "day" compares calendar dates;
// "week" and "month" compare age in days against 7 and 30.
func inRange(dateStr string, rng Range, now time.Time) bool {
	if rng == RangeAll {
		return true
	}

	when, ok := model.ParseDate(dateStr)
	if !ok {
		return false
	}

	switch rng {
	case RangeDay:
		return model.DateOnly(dateStr) == now.Format("2006-01-02")
	case RangeWeek:
		return now.Sub(when).Hours()/24 <= 7
	case RangeMonth:
		return now.Sub(when).Hours()/24 <= 30
	default:
		return true
	}
}
