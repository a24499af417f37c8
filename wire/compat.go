package wire

import (
	"os"
	"strconv"
	"sync/atomic"
)

// Config holds process-wide defaults. It is meant to be set once at
// startup, before any encoding happens; Writers created with an explicit
// mode ignore it.
type Config struct {
	// DefaultMode is the Writer mode Marshal uses.
	DefaultMode Mode

	// SizeHint, when positive, is the initial capacity Marshal allocates
	// instead of the mode default. Useful when most messages have a known
	// size.
	SizeHint int
}

var config atomic.Pointer[Config]

// SetConfig replaces the process-wide defaults.
func SetConfig(c Config) { config.Store(&c) }

// CurrentConfig returns the process-wide defaults.
func CurrentConfig() Config { return *config.Load() }

func init() {
	c := Config{DefaultMode: Balanced}

	// Optional env toggles for benchmark harnesses; unset keeps the defaults.
	if v := os.Getenv("PBCODEC_WRITER_MODE"); v != "" {
		if m, err := ParseMode(v); err == nil {
			c.DefaultMode = m
		}
	}
	if v := os.Getenv("PBCODEC_WRITER_SIZE_HINT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SizeHint = n
		}
	}
	SetConfig(c)
}
