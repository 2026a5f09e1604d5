package conversation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pickup times are entered as "MM-DD HH:MMam" / "MM-DD HH:MMpm", nothing
// else. No natural-language parsing.
var pickupTimePattern = regexp.MustCompile(`^(\d{2})-(\d{2}) (\d{1,2}):(\d{2})(am|pm)$`)

// ErrBadTimeFormat is returned when an input does not match the pickup time
// pattern or names an impossible date or clock time.
var ErrBadTimeFormat = errors.New(`time must look like "03-28 4:10pm"`)

// ParsePickupTime parses a pickup time string in the given timezone.
// Surrounding whitespace and the case of the am/pm suffix are forgiven;
// everything else must match the pattern exactly. The year is resolved as
// the current year of now in loc; a date earlier than today stays in the
// current year rather than rolling into the next, and is rejected
// downstream by the pickup-window lead check.
func ParsePickupTime(input string, now time.Time, loc *time.Location) (time.Time, error) {
	m := pickupTimePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(input)))
	if m == nil {
		return time.Time{}, ErrBadTimeFormat
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	hour, _ := strconv.Atoi(m[3])
	minute, _ := strconv.Atoi(m[4])

	if hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, ErrBadTimeFormat
	}
	if m[5] == "pm" && hour != 12 {
		hour += 12
	}
	if m[5] == "am" && hour == 12 {
		hour = 0
	}

	year := now.In(loc).Year()
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)

	// time.Date normalizes out-of-range components ("02-31" becomes March),
	// which would silently accept an impossible date. Reject instead.
	if int(t.Month()) != month || t.Day() != day {
		return time.Time{}, ErrBadTimeFormat
	}

	return t, nil
}

// FormatPickupTime renders a pickup time back in the input pattern, in the
// given timezone. Round-tripping a parsed string reproduces an equivalent
// wall-clock time.
func FormatPickupTime(t time.Time, loc *time.Location) string {
	t = t.In(loc)

	hour := t.Hour()
	suffix := "am"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "pm"
	case hour > 12:
		hour -= 12
		suffix = "pm"
	}

	return fmt.Sprintf("%02d-%02d %d:%02d%s", int(t.Month()), t.Day(), hour, t.Minute(), suffix)
}
