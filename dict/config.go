package dict

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	HtInitialSize         = int64(4)
	defaultForceRatio     = int64(5)
	defaultMinFillPercent = int64(10)
)

// Config holds the resize policy of one or more dicts. Dicts created with the
// same *Config share its resize toggle, which is how a caller disables
// automatic resizing for a whole process (for example while a snapshot is
// being written).
type Config struct {
	ResizeEnabled bool `yaml:"resize_enabled"`
	// ForceResizeRatio forces an expand even with resizing disabled once
	// used/size exceeds it.
	ForceResizeRatio int64 `yaml:"force_resize_ratio"`
	// InitialSize is the first and the minimum table size. Power of two.
	InitialSize int64 `yaml:"initial_size"`
	// MinFillPercent is the fill below which a delete shrinks the table.
	MinFillPercent int64 `yaml:"min_fill_percent"`
	// RandSeed seeds GetRandomKey/GetSomeKeys. Zero picks a clock based seed.
	RandSeed uint64 `yaml:"rand_seed"`
}

func DefaultConfig() *Config {
	return &Config{
		ResizeEnabled:    true,
		ForceResizeRatio: defaultForceRatio,
		InitialSize:      HtInitialSize,
		MinFillPercent:   defaultMinFillPercent,
	}
}

// ParseConfig reads a YAML document on top of DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.InitialSize <= 0 || cfg.InitialSize&(cfg.InitialSize-1) != 0 {
		return fmt.Errorf("%w: initial_size %d is not a power of two", ErrInvalidConfig, cfg.InitialSize)
	}
	if cfg.ForceResizeRatio < 1 {
		return fmt.Errorf("%w: force_resize_ratio must be at least 1", ErrInvalidConfig)
	}
	if cfg.MinFillPercent < 0 || cfg.MinFillPercent >= 50 {
		return fmt.Errorf("%w: min_fill_percent must be in [0, 50)", ErrInvalidConfig)
	}
	return nil
}

// normalize repairs a Config that did not go through ParseConfig: a missing
// InitialSize or ForceResizeRatio takes its default, InitialSize is rounded
// up to a power of two and MinFillPercent is clamped into [0, 50).
func (cfg *Config) normalize() {
	switch {
	case cfg.InitialSize <= 0:
		cfg.InitialSize = HtInitialSize
	case cfg.InitialSize > maxTableSize:
		cfg.InitialSize = maxTableSize
	case cfg.InitialSize&(cfg.InitialSize-1) != 0:
		size := int64(1)
		for size < cfg.InitialSize {
			size <<= 1
		}
		cfg.InitialSize = size
	}
	if cfg.ForceResizeRatio < 1 {
		cfg.ForceResizeRatio = defaultForceRatio
	}
	if cfg.MinFillPercent < 0 {
		cfg.MinFillPercent = 0
	} else if cfg.MinFillPercent >= 50 {
		cfg.MinFillPercent = defaultMinFillPercent
	}
}

func (cfg *Config) EnableResize() {
	cfg.ResizeEnabled = true
}

func (cfg *Config) DisableResize() {
	cfg.ResizeEnabled = false
}

func (cfg *Config) CanResize() bool {
	return cfg.ResizeEnabled
}
