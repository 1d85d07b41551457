package magic

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// DefaultSeed is the seed used when none is configured.
const DefaultSeed uint64 = 5489

// Config controls a full table build.
type Config struct {
	// Seed determines every candidate stream. The same seed and heuristic
	// always produce the same magic numbers, whatever the worker count.
	Seed uint64

	// Workers is the number of squares searched concurrently.
	Workers int

	// MaxCandidates caps the raw candidates drawn for each square, 0 for
	// no cap.
	MaxCandidates uint64

	// Timeout bounds the whole build, 0 for no deadline.
	Timeout time.Duration

	Heuristic Heuristic

	// Logger receives progress records. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a config using every CPU and no search bounds.
func DefaultConfig() Config {
	return Config{
		Seed:      DefaultSeed,
		Workers:   runtime.GOMAXPROCS(0),
		Heuristic: DefaultHeuristic(),
	}
}

// Validate reports a wrapped ErrInvalidConfig for unusable settings.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	case c.Timeout < 0:
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidConfig, c.Timeout)
	case c.Heuristic.Draws < 1 || c.Heuristic.Draws > MaxDraws:
		return fmt.Errorf("%w: heuristic draws must be in [1,%d], got %d", ErrInvalidConfig, MaxDraws, c.Heuristic.Draws)
	case c.Heuristic.MinHighBits < 0 || c.Heuristic.MinHighBits > 8:
		return fmt.Errorf("%w: heuristic high bits must be in [0,8], got %d", ErrInvalidConfig, c.Heuristic.MinHighBits)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
