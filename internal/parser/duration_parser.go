package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockRegex    = regexp.MustCompile(`^(\d+):([0-5]\d)$`)
	durationRegex = regexp.MustCompile(`^(?:(\d+)m)?(?:(\d+)s?)?$`)
)

// ParseSeconds parses a duration into whole seconds
// Supported formats:
// - plain seconds (e.g., "90")
// - seconds with unit (e.g., "90s")
// - minutes and seconds (e.g., "2m", "1m30s", "1m30")
// - clock style (e.g., "1:30")
func ParseSeconds(input string) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("duration is empty")
	}

	if matches := clockRegex.FindStringSubmatch(input); len(matches) == 3 {
		minutes, _ := strconv.Atoi(matches[1])
		seconds, _ := strconv.Atoi(matches[2])
		return minutes*60 + seconds, nil
	}

	matches := durationRegex.FindStringSubmatch(input)
	if matches == nil || (matches[1] == "" && matches[2] == "") {
		return 0, fmt.Errorf("invalid duration %q. Use: 90, 90s, 1m30s or 1:30", input)
	}

	total := 0
	if matches[1] != "" {
		minutes, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes")
		}
		total += minutes * 60
	}
	if matches[2] != "" {
		seconds, err := strconv.Atoi(matches[2])
		if err != nil {
			return 0, fmt.Errorf("invalid seconds")
		}
		total += seconds
	}

	if total > 24*60*60 {
		return 0, fmt.Errorf("duration must be under 24 hours")
	}
	return total, nil
}

// FormatSeconds formats seconds as m:ss, or h:mm:ss past an hour
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

var weekdays = map[string]int{
	"mon": 1, "monday": 1,
	"tue": 2, "tues": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thur": 4, "thurs": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
	"sun": 7, "sunday": 7,
}

// ParseWeekday parses "mon".."sun", full names or 1..7. Empty and "any" mean 0
func ParseWeekday(input string) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || input == "any" {
		return 0, nil
	}
	if day, ok := weekdays[input]; ok {
		return day, nil
	}
	if day, err := strconv.Atoi(input); err == nil && day >= 1 && day <= 7 {
		return day, nil
	}
	return 0, fmt.Errorf("invalid day %q. Use: mon..sun or 1..7", input)
}

// WeekdayName returns the short name for an ISO weekday, or "any" for 0
func WeekdayName(day int) string {
	names := []string{"any", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if day < 0 || day >= len(names) {
		return "?"
	}
	return names[day]
}
