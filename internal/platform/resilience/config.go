package resilience

import "time"

// CircuitBreakerConfig is shared by every upstream source; each source gets
// its own breaker built from it.
type CircuitBreakerConfig struct {
	Enabled bool
	// FailureThreshold is the number of consecutive transient failures that
	// opens the breaker.
	FailureThreshold int
	OpenTimeout      time.Duration
	// HalfOpenMaxReq caps trial requests once OpenTimeout has elapsed.
	HalfOpenMaxReq int
}

// DefaultCircuitBreakerConfig suits slow public data sources: a leaderboard
// CSV that fails five times in a row is left alone for half a minute.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

// Normalized replaces unset or invalid fields with their defaults.
func (c CircuitBreakerConfig) Normalized() CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	c.FailureThreshold = atLeast(c.FailureThreshold, 1, defaults.FailureThreshold)
	c.HalfOpenMaxReq = atLeast(c.HalfOpenMaxReq, 1, defaults.HalfOpenMaxReq)
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaults.OpenTimeout
	}
	return c
}

func atLeast(value, floor, fallback int) int {
	if value < floor {
		return fallback
	}
	return value
}
