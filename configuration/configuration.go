package configuration

import (
	"fmt"
	"time"
)

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	TickEvery         string `usage:"period of the automatic merge, for example 500ms; empty disables it"`
	EnableCompression bool   `usage:"gzip responses for clients that accept it"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}

func Default() *Configuration {
	return &Configuration{
		HttpAddr:          "127.0.0.1:8080",
		TickEvery:         "1s",
		EnableCompression: true,
		Version:           false,
		ShowBanner:        true,
		ShowConfig:        false,
	}
}

// TickPeriod parses TickEvery. An empty value means no automatic merge.
func (c *Configuration) TickPeriod() (time.Duration, error) {
	if c.TickEvery == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TickEvery)
	if err != nil {
		return 0, fmt.Errorf("tick every '%s': %w", c.TickEvery, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("tick every '%s': must not be negative", c.TickEvery)
	}
	return d, nil
}
