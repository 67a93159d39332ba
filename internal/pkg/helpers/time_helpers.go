package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a configured duration. Empty, malformed and
// non-positive values fall back to def: a zero cache TTL or rate window would
// disable expiry rather than mean "none".
func ParseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		// Global logger: this runs while the configured one is being built.
		log.Warn().Err(err).Str("value", raw).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return d
}
