package config

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports the first malformed setting.
func (c *Config) Validate() error {
	if c.Schedule.Interval <= 0 {
		return fmt.Errorf("%w: schedule.interval must be positive, got %s", ErrInvalid, c.Schedule.Interval)
	}
	if c.Sweep.DaysAgo < 0 {
		return fmt.Errorf("%w: sweep.daysAgo must be >= 0, got %d", ErrInvalid, c.Sweep.DaysAgo)
	}
	if c.Sweep.Root == "" {
		return fmt.Errorf("%w: sweep.root is empty", ErrInvalid)
	}
	if c.Sweep.Pattern == "" || !doublestar.ValidatePattern(c.Sweep.Pattern) {
		return fmt.Errorf("%w: sweep.pattern %q is not a valid glob", ErrInvalid, c.Sweep.Pattern)
	}
	switch c.Sweep.Strategy {
	case StrategyLastAccess, StrategyModified:
	default:
		return fmt.Errorf("%w: sweep.strategy %q (want %q or %q)", ErrInvalid, c.Sweep.Strategy, StrategyLastAccess, StrategyModified)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil || c.Logging.Level == "" {
		return fmt.Errorf("%w: logging.level %q (want trace, debug, info, warn, error, fatal, panic or disabled)", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q (want console or json)", ErrInvalid, c.Logging.Format)
	}
	return nil
}
