package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedExercise represents an exercise parsed from shorthand
type ParsedExercise struct {
	Name        string
	Sets        int
	Reps        int
	WeightKg    float64
	RestSeconds *int // nil when no rest:... token was given
	DayOfWeek   int
	Errors      []string
}

var (
	setsRepsRegex = regexp.MustCompile(`\b(\d+)\s*[xX]\s*(\d+)\b`)
	weightRegex   = regexp.MustCompile(`@(\d+(?:\.\d+)?)\s*(kg|lb|lbs)?\b`)
	restRegex     = regexp.MustCompile(`rest:([^\s]+)`)
	dayRegex      = regexp.MustCompile(`day:([^\s]+)`)
)

// ParseExercise extracts sets, reps, weight, rest and day from a one-line description
// Syntax: "Bench press 3x5 @80kg rest:90s day:mon"
func ParseExercise(input string) ParsedExercise {
	result := ParsedExercise{Errors: []string{}}

	// Extract sets x reps (3x5)
	if matches := setsRepsRegex.FindStringSubmatch(input); len(matches) == 3 {
		result.Sets, _ = strconv.Atoi(matches[1])
		result.Reps, _ = strconv.Atoi(matches[2])
		if result.Sets == 0 {
			result.Errors = append(result.Errors, "Sets must be at least 1")
		}
		input = setsRepsRegex.ReplaceAllString(input, "")
	}

	// Extract weight (@80kg, @80, @175lb)
	if matches := weightRegex.FindStringSubmatch(input); len(matches) == 3 {
		weight, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid weight '"+matches[1]+"'")
		} else {
			if strings.HasPrefix(matches[2], "lb") {
				weight = weight * 0.45359237
			}
			result.WeightKg = weight
		}
		input = weightRegex.ReplaceAllString(input, "")
	}

	// Extract rest (rest:90s, rest:1m30s)
	if matches := restRegex.FindStringSubmatch(input); len(matches) == 2 {
		seconds, err := ParseSeconds(matches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid rest '"+matches[1]+"': "+err.Error())
		} else {
			result.RestSeconds = &seconds
		}
		input = restRegex.ReplaceAllString(input, "")
	}

	// Extract day (day:mon, day:3)
	if matches := dayRegex.FindStringSubmatch(input); len(matches) == 2 {
		day, err := ParseWeekday(matches[1])
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.DayOfWeek = day
		}
		input = dayRegex.ReplaceAllString(input, "")
	}

	// Clean up the name (remove extra spaces)
	result.Name = strings.Join(strings.Fields(input), " ")

	return result
}
