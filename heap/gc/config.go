package gc

import (
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/heapkit/heap"
)

// Runtime debug flag for collection logging - controlled by HEAPKIT_LOG_GC env var.
var logGC = os.Getenv("HEAPKIT_LOG_GC") != ""

// Config tunes a Collector. The zero value of any field selects the
// DefaultConfig value.
type Config struct {
	// InitialThreshold is the bytes-allocated level that triggers the
	// first automatic collection.
	InitialThreshold uint64

	// MinThreshold floors the adaptive threshold after a collection.
	MinThreshold uint64

	// GrowthFactor scales bytesAllocated into the next threshold.
	GrowthFactor float64

	// ChunkSize is the arena mapping granularity.
	ChunkSize uint32

	// Logger receives debug collection logs. Nil discards them unless
	// HEAPKIT_LOG_GC is set, which logs to stderr.
	Logger *slog.Logger
}

// DefaultConfig is used for unset Config fields and nil Config pointers.
var DefaultConfig = Config{
	InitialThreshold: 1 << 20,  // 1 MB
	MinThreshold:     512 << 10, // 512 KB
	GrowthFactor:     2.0,
	ChunkSize:        heap.DefaultChunkSize,
}

// withDefaults fills unset fields from DefaultConfig and resolves the
// logger.
func (c *Config) withDefaults() Config {
	cfg := DefaultConfig
	if c != nil {
		if c.InitialThreshold != 0 {
			cfg.InitialThreshold = c.InitialThreshold
		}
		if c.MinThreshold != 0 {
			cfg.MinThreshold = c.MinThreshold
		}
		if c.GrowthFactor != 0 {
			cfg.GrowthFactor = c.GrowthFactor
		}
		if c.ChunkSize != 0 {
			cfg.ChunkSize = c.ChunkSize
		}
		cfg.Logger = c.Logger
	}
	if cfg.Logger == nil {
		if logGC {
			cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		} else {
			cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
	return cfg
}
