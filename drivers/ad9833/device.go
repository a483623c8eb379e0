// Package ad9833 is a minimal driver for the AD9833 DDS chip covering the
// paths a tuning instrument needs.
//
// Design notes (datasheet references):
//   - 16-bit serial words, MSB first, FSYNC low for the duration of the word.
//   - Bits 15..14 select the register: 00 control, 01 FREQ0, 10 FREQ1, 11 PHASE0.
//   - With B28 set, FREQ0 takes two consecutive words: low 14 bits, then high 14 bits.
//   - RESET holds the output at midscale; registers written under RESET take
//     effect glitch-free when it is released.
package ad9833

import "ddsgen-go/errcode"

// WordWriter transmits one raw 16-bit word to the chip.
type WordWriter interface {
	WriteWord(w uint16) error
}

// Config for the synthesis path. Integer-only.
type Config struct {
	MasterClockHz uint32
	MaxOutputHz   uint32 // exclusive upper bound for WriteFrequency
}

// DefaultConfig matches the 25 MHz reference on the instrument board.
func DefaultConfig() Config {
	return Config{
		MasterClockHz: 25_000_000,
		MaxOutputHz:   12_000_000,
	}
}

// Validate checks the fields the codec divides by.
func (c Config) Validate() error {
	if c.MasterClockHz == 0 {
		return &errcode.E{C: errcode.InvalidParams, Msg: "MasterClockHz must be non-zero"}
	}
	if c.MaxOutputHz == 0 || c.MaxOutputHz > c.MasterClockHz/2 {
		return &errcode.E{C: errcode.InvalidParams, Msg: "MaxOutputHz must be in (0, mclk/2]"}
	}
	return nil
}

// Device sequences register writes to one AD9833.
type Device struct {
	w     WordWriter
	mclk  uint32
	maxHz uint32

	inConfig bool
	hz       uint32
	phase    uint32
}

// New constructs a Device. Zero config fields fall back to DefaultConfig.
func New(w WordWriter, cfg Config) *Device {
	def := DefaultConfig()
	if cfg.MasterClockHz == 0 {
		cfg.MasterClockHz = def.MasterClockHz
	}
	if cfg.MaxOutputHz == 0 {
		cfg.MaxOutputHz = def.MaxOutputHz
	}
	return &Device{w: w, mclk: cfg.MasterClockHz, maxHz: cfg.MaxOutputHz}
}

// Introspection.
func (d *Device) Frequency() uint32   { return d.hz }
func (d *Device) Phase() uint32       { return d.phase }
func (d *Device) InConfig() bool      { return d.inConfig }
func (d *Device) MasterClock() uint32 { return d.mclk }
func (d *Device) MaxOutputHz() uint32 { return d.maxHz }
func (d *Device) TuningWord() uint32  { return HzToTuningWord(d.hz, d.mclk) }
func (d *Device) Resolution() float64 { return Resolution(d.mclk) }

// Init runs the power-up sequence: reset with B28 latched (sent twice so the
// serial interface is in word sync), program FREQ0 and PHASE0, release reset.
func (d *Device) Init(hz, deg uint32) error {
	if err := d.write("init", wordResetB28); err != nil {
		return err
	}
	d.inConfig = true
	if err := d.write("init", wordResetB28); err != nil {
		return err
	}
	if err := d.WriteFrequency(hz); err != nil {
		return err
	}
	if err := d.WritePhase(deg); err != nil {
		return err
	}
	return d.EndConfig()
}

// BeginConfig asserts RESET (keeping B28) so following register writes are
// applied together when EndConfig releases it.
func (d *Device) BeginConfig() error  {
	if err := d.write("begin_config", wordResetB28); err != nil {
		return err
	}
	d.inConfig = true
	return nil
}

// EndConfig clears RESET and the output runs from the new registers.
func (d *Device) EndConfig() error    {
	if err := d.write("end_config", wordRunB28); err != nil {
		return err
	}
	d.inConfig = false
	return nil
}

// Apply reprograms frequency and phase inside one reset bracket.
func (d *Device) Apply(hz, deg uint32) error {
	if hz >= d.maxHz {
		return d.rangeErr()
	}
	if err := d.BeginConfig(); err != nil {
		return err
	}
	if err := d.WriteFrequency(hz); err != nil {
		return err
	}
	if err := d.WritePhase(deg); err != nil {
		return err
	}
	return d.EndConfig()
}

// WriteFrequency programs FREQ0: low half, then high half. A lone update in
// steady state does not need the reset bracket.
func (d *Device) WriteFrequency(hz uint32) error {
	if hz >= d.maxHz {
		return d.rangeErr()
	}
	words := FrequencyWords(HzToTuningWord(hz, d.mclk))
	for _, w := range words {
		if err := d.write("write_frequency", w); err != nil {
			return err
		}
	}
	d.hz = hz
	return nil
}

// WritePhase programs PHASE0 with deg mod 360.
func (d *Device) WritePhase(deg uint32) error {
	if err := d.write("write_phase", PhaseWord(deg)); err != nil {
		return err
	}
	d.phase = deg % 360
	return nil
}

func (d *Device) write(op string, w uint16) error {
	if d.w == nil {
		return &errcode.E{C: errcode.Transport, Op: op, Msg: "no word writer"}
	}
	return errcode.Wrap(errcode.Transport, op, d.w.WriteWord(w))
}

func (d *Device) rangeErr() error     {
	return &errcode.E{C: errcode.OutOfRange, Op: "write_frequency", Msg: "frequency above output limit"}
}
