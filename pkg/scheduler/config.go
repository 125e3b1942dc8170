package scheduler

import "time"

const (
	statsWindowDefault   = 200 * time.Millisecond
	frameIntervalDefault = 16 * time.Millisecond
	frameIntervalMin     = time.Millisecond
	initialFPS           = 60
)

// Config tunes a Scheduler.
type Config struct {
	// StatsWindow is the span over which FPS is measured. Stats are
	// recomputed only when a window elapses.
	StatsWindow time.Duration `yaml:"stats_window"`

	// FrameInterval is the tick period of a LoopClock.
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		StatsWindow:   statsWindowDefault,
		FrameInterval: frameIntervalDefault,
	}
}

// WithDefaults returns c with zero or negative fields replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.StatsWindow <= 0 {
		c.StatsWindow = statsWindowDefault
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = frameIntervalDefault
	}
	if c.FrameInterval < frameIntervalMin {
		c.FrameInterval = frameIntervalMin
	}
	return c
}
