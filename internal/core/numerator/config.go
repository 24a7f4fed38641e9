package numerator

import (
	"fmt"
	"time"
)

// Config holds numbering configuration for one allocation scope.
type Config struct {
	// Prefix added to all numbers (e.g. "INV", "PRO")
	Prefix string

	// IncludeYear adds the period year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year" or "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults: yearly reset, 5-digit padding.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// Key builds the sequence scope key for a period, e.g. "INV_2026".
func (c Config) Key(period time.Time) string {
	if c.ResetPeriod == "never" {
		return c.Prefix
	}
	return fmt.Sprintf("%s_%d", c.Prefix, period.Year())
}

// Format renders an allocated raw value as a display number.
func (c Config) Format(period time.Time, value int64) string {
	pad := c.PadWidth
	if pad <= 0 {
		pad = 5
	}
	if c.IncludeYear {
		return fmt.Sprintf("%s-%d-%0*d", c.Prefix, period.Year(), pad, value)
	}
	return fmt.Sprintf("%s-%0*d", c.Prefix, pad, value)
}
