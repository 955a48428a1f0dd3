package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/balkashynov/wrokout/internal/timer"
)

var (
	emomRegex   = regexp.MustCompile(`^(\S+)\s*x\s*(\d+)$`)
	tabataRegex = regexp.MustCompile(`^(\S+)/(\S+?)\s*x\s*(\d+)$`)
)

// ParseTimerSpec parses a utility timer description
// Supported formats:
// - stopwatch
// - countdown 90s / rest 1m
// - amrap 12m
// - emom 60x10 (interval x rounds)
// - tabata 20/10x8 (work/rest x rounds), plain "tabata" means 20/10x8
func ParseTimerSpec(input string) (timer.Config, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return timer.Config{}, fmt.Errorf("timer spec is empty")
	}
	mode, args := fields[0], strings.Join(fields[1:], " ")

	var cfg timer.Config
	switch mode {
	case "stopwatch", "sw":
		cfg = timer.Stopwatch()

	case "countdown", "cd", "rest", "amrap":
		seconds, err := ParseSeconds(args)
		if err != nil {
			return timer.Config{}, err
		}
		switch mode {
		case "rest":
			cfg = timer.Rest(seconds)
		case "amrap":
			cfg = timer.AMRAP(seconds)
		default:
			cfg = timer.Countdown(seconds)
		}

	case "emom":
		matches := emomRegex.FindStringSubmatch(args)
		if len(matches) != 3 {
			return timer.Config{}, fmt.Errorf("invalid emom spec %q. Use: emom 60x10", args)
		}
		interval, err := ParseSeconds(matches[1])
		if err != nil {
			return timer.Config{}, err
		}
		rounds, _ := strconv.Atoi(matches[2])
		cfg = timer.EMOM(interval, rounds)

	case "tabata":
		if args == "" {
			cfg = timer.Tabata(20, 10, 8)
			break
		}
		matches := tabataRegex.FindStringSubmatch(args)
		if len(matches) != 4 {
			return timer.Config{}, fmt.Errorf("invalid tabata spec %q. Use: tabata 20/10x8", args)
		}
		work, err := ParseSeconds(matches[1])
		if err != nil {
			return timer.Config{}, err
		}
		rest, err := ParseSeconds(matches[2])
		if err != nil {
			return timer.Config{}, err
		}
		rounds, _ := strconv.Atoi(matches[3])
		cfg = timer.Tabata(work, rest, rounds)

	default:
		return timer.Config{}, fmt.Errorf("unknown timer mode %q. Use: stopwatch, countdown, rest, amrap, emom or tabata", mode)
	}

	if err := cfg.Validate(); err != nil {
		return timer.Config{}, err
	}
	return cfg, nil
}
