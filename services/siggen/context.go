package siggen

import (
	"math"

	"ddsgen-go/drivers/ad9833"
	"ddsgen-go/types"
	"ddsgen-go/x/ramp"
)

// Limits bound operator input.
type Limits struct {
	MaxHz           uint32 // exclusive
	MaxSweepSeconds uint32
}

// DefaultLimits matches the 25 MHz board.
func DefaultLimits() Limits {
	return Limits{
		MaxHz:           ad9833.DefaultConfig().MaxOutputHz,
		MaxSweepSeconds: math.MaxUint32 / 1000,
	}
}

// SweepSettings are the sweep fields of a Configuration.
type SweepSettings struct {
	F1Hz, F2Hz uint32
	DurationMs uint32
	Rate       int32
}

func sweepOf(c types.Configuration) SweepSettings {
	return SweepSettings{F1Hz: c.SweepF1Hz, F2Hz: c.SweepF2Hz, DurationMs: c.SweepDurationMs, Rate: c.RateMilliHzMs}
}

func (s SweepSettings) applyTo(c *types.Configuration) {
	c.SweepF1Hz, c.SweepF2Hz = s.F1Hz, s.F2Hz
	c.SweepDurationMs, c.RateMilliHzMs = s.DurationMs, s.Rate
}

// Context is everything the state machine owns. Step takes and returns it
// by value.
type Context struct {
	Config types.Configuration
	Buf    Buffer

	// Return is the mode to resume after Store or Recall.
	Return types.Mode
	// TrackHz is the Track frequency to restore when leaving the sweep menus.
	TrackHz uint32
	// Saved is the sweep setup on entry to SetF1, put back on cancel.
	Saved SweepSettings

	Sweep   ramp.Sweep
	NowMs   uint32
	Encoder int32

	Limits Limits
}

// NewContext returns the boot context for cfg.
func NewContext(cfg types.Configuration, lim Limits) Context {
	return Context{
		Config:  cfg,
		Return:  types.ModeTrack,
		TrackHz: cfg.FrequencyHz,
		Encoder: int32(cfg.FrequencyHz),
		Limits:  lim,
	}
}
