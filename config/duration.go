package config

import (
	"fmt"
	"time"
)

// Duration is a time.Duration written as text, like "5m" or "1h30m".
type Duration time.Duration

// String formats d like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText writes d for TOML and JSON encoders.
func (d Duration) MarshalText() (text []byte, err error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText parses text with time.ParseDuration. Negative durations are rejected.
func (d *Duration) UnmarshalText(text []byte) error {
	p, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if p < 0 {
		return fmt.Errorf("duration %q is negative", text)
	}
	*d = Duration(p)
	return nil
}
