package types

// ---- Operating modes ----

// Mode is the operating state of the instrument.
type Mode uint8

const (
	ModeTrack Mode = iota
	ModeTrackPause
	ModeSetF1
	ModeSetF2
	ModeSetTime
	ModeSweeping
	ModeStore
	ModeRecall

	modeCount
)

var modeNames = [modeCount]string{
	"track", "pause", "set_f1", "set_f2", "set_time", "sweep", "store", "recall",
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return "unknown"
}

// Valid reports whether m is a defined mode.
func (m Mode) Valid() bool { return m < modeCount }

// ---- Configuration snapshot ----

// Configuration is the complete operator-visible setup. It is copied by
// value; only the state machine mutates the live instance.
type Configuration struct {
	Mode            Mode   `json:"mode" yaml:"mode"`
	FrequencyHz     uint32 `json:"frequency_hz" yaml:"frequency_hz"`
	SweepF1Hz       uint32 `json:"sweep_f1_hz" yaml:"sweep_f1_hz"`
	SweepF2Hz       uint32 `json:"sweep_f2_hz" yaml:"sweep_f2_hz"`
	SweepDurationMs uint32 `json:"sweep_duration_ms" yaml:"sweep_duration_ms"`
	RateMilliHzMs   int32  `json:"rate_mhz_per_ms" yaml:"rate_mhz_per_ms"`
}

// DefaultFrequencyHz is the boot frequency when no snapshot exists.
const DefaultFrequencyHz = 60000

// DefaultConfiguration is the boot snapshot: Track at 60 kHz.
func DefaultConfiguration() Configuration {
	return Configuration{Mode: ModeTrack, FrequencyHz: DefaultFrequencyHz}
}

// ---- Bus payloads (retained) ----

// Status is published on siggen/state after every handled event that
// changes what the instrument shows or outputs.
type Status struct {
	Mode   string        `json:"mode"`
	Hz     uint32        `json:"hz"`
	Buffer string        `json:"buffer"`
	Lines  [2]string     `json:"lines"`
	Config Configuration `json:"config"`
	TS     int64         `json:"ts_ms"`
}
