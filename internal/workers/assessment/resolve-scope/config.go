// internal/workers/assessment/resolve-scope/config.go
package resolvescope

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
