package resilience

import (
	"time"

	crerr "github.com/cockroachdb/errors"
)

// CircuitBreakerConfig mirrors the ESPN_CIRCUIT_* settings.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 8,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// Validate rejects explicit nonsense instead of silently normalizing it.
func (c CircuitBreakerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.FailureThreshold <= 0 {
		return crerr.New("ESPN_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	if c.OpenTimeout <= 0 {
		return crerr.New("ESPN_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	if c.HalfOpenMaxReq <= 0 {
		return crerr.New("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}
	return nil
}
