package reminder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeParseError reports a time spec that matches neither supported grammar.
type TimeParseError struct {
	Spec string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("unrecognized time %q: expected HH:MM or \"in N minutes/hours\"", e.Spec)
}

var (
	absoluteSpec = regexp.MustCompile(`^(?:at\s+)?(\d{1,2}):(\d{2})$`)
	relativeSpec = regexp.MustCompile(`^in\s+(\d+)\s+(minutes?|hours?)$`)
)

// ParseTimeSpec resolves a spoken time spec into an absolute fire time.
//
// Two grammars are accepted: an absolute clock time ("18:30", "at 9:00") and
// a relative offset ("in 5 minutes", "in 2 hours"). An absolute time-of-day
// that has already passed today rolls forward to the same time tomorrow, so
// "remind me at 9:00" said at 10:00 never creates an immediately-overdue
// reminder. Anything else fails with a *TimeParseError.
func ParseTimeSpec(spec string, now time.Time) (time.Time, error) {
	trimmed := strings.ToLower(strings.TrimSpace(spec))

	if m := absoluteSpec.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return time.Time{}, &TimeParseError{Spec: spec}
		}
		fireAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !fireAt.After(now) {
			fireAt = fireAt.Add(24 * time.Hour)
		}
		return fireAt, nil
	}

	if m := relativeSpec.FindStringSubmatch(trimmed); m != nil {
		n, _ := strconv.Atoi(m[1])
		unit := time.Minute
		if strings.HasPrefix(m[2], "hour") {
			unit = time.Hour
		}
		return now.Add(time.Duration(n) * unit), nil
	}

	return time.Time{}, &TimeParseError{Spec: spec}
}
