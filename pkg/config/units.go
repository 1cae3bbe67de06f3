package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration to support extended units (d, w) in YAML.
type Duration time.Duration

// Common durations.
const (
	Day  = 24 * time.Hour
	Week = 7 * Day
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// ParseDuration parses a duration string, supporting d and w in addition to
// the units time.ParseDuration understands.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.ContainsAny(s, "dw") {
		return parseExtendedDuration(s)
	}
	return time.ParseDuration(s)
}

var unitMap = map[string]time.Duration{
	"ns": time.Nanosecond,
	"us": time.Microsecond,
	"µs": time.Microsecond,
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  Day,
	"w":  Week,
}

func parseExtendedDuration(s string) (time.Duration, error) {
	var total time.Duration

	re := regexp.MustCompile(`([0-9.]+)([a-zµ]+)`)
	matches := re.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	for _, match := range matches {
		val, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number in duration: %s", match[1])
		}
		base, ok := unitMap[match[2]]
		if !ok {
			return 0, fmt.Errorf("unknown unit: %s", match[2])
		}
		total += time.Duration(val * float64(base))
	}

	return total, nil
}

// Distance represents a distance in meters.
type Distance float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Distance) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		var f float64
		if errNum := value.Decode(&f); errNum == nil {
			*d = Distance(f)
			return nil
		}
		return err
	}

	dist, err := ParseDistance(s)
	if err != nil {
		return err
	}
	*d = Distance(dist)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Distance) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("%.2fm", float64(d)), nil
}

// ParseDistance parses a distance string with an m, km, nm or ft suffix.
func ParseDistance(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	var mult float64
	var numStr string

	switch {
	case strings.HasSuffix(s, "km"):
		mult = 1000
		numStr = strings.TrimSuffix(s, "km")
	case strings.HasSuffix(s, "nm"):
		mult = 1852
		numStr = strings.TrimSuffix(s, "nm")
	case strings.HasSuffix(s, "m"):
		mult = 1
		numStr = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "ft"):
		mult = 0.3048
		numStr = strings.TrimSuffix(s, "ft")
	default:
		mult = 1
		numStr = s
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(numStr), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid distance number: %w", err)
	}

	return val * mult, nil
}
