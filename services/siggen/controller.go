// Package siggen is the operating logic of the signal generator: a pure
// state machine (Step) over keypad, encoder and button events, and a
// Controller that feeds it from the front panel and carries out its
// effects on the DDS chip and the settings slots.
package siggen

import (
	"context"

	"ddsgen-go/bus"
	"ddsgen-go/errcode"
	"ddsgen-go/services/panel"
	"ddsgen-go/services/settings"
	"ddsgen-go/types"
	"ddsgen-go/x/conv"
)

// DDS is the frequency output (ad9833.Device).
type DDS interface {
	WriteFrequency(hz uint32) error
	Apply(hz, deg uint32) error
}

// Slots is the configuration store (settings.Store).
type Slots interface {
	Store(slot int, cfg types.Configuration) error
	Recall(slot int) (types.Configuration, error)
}

// TickSource delivers the 1 ms control-loop tick.
type TickSource interface {
	Ticks() <-chan struct{}
}

// Deps are the collaborators of a Controller. Button, Keypad, Display and
// Conn may be nil.
type Deps struct {
	DDS     DDS
	Slots   Slots
	Encoder panel.Encoder
	Clock   panel.Clock
	Button  panel.Button
	Keypad  panel.Keypad
	Display panel.Display
	Conn    *bus.Connection

	Keys      *ScanMap // nil selects DefaultScanMap
	Limits    Limits   // zero selects DefaultLimits
	DefaultHz uint32   // boot frequency without a stored snapshot
	WarnMs    uint32   // transient warning lifetime
}

var topicState = bus.T("siggen", "state")

const defaultWarnMs = 1500

// Controller owns the live Context and is the only writer of it.
type Controller struct {
	d    Deps
	keys ScanMap

	st  types.Mode
	ctx Context

	warn      string
	warnUntil uint32

	lines [2]string
	drawn bool
	last  types.Status
}

func New(d Deps) *Controller {
	c := &Controller{d: d, keys: DefaultScanMap}
	if d.Keys != nil {
		c.keys = *d.Keys
	}
	if c.d.Limits.MaxHz == 0 {
		c.d.Limits = DefaultLimits()
	}
	if c.d.DefaultHz == 0 || c.d.DefaultHz >= c.d.Limits.MaxHz {
		c.d.DefaultHz = types.DefaultFrequencyHz
	}
	if c.d.WarnMs == 0 {
		c.d.WarnMs = defaultWarnMs
	}
	c.ctx = NewContext(c.defaults(), c.d.Limits)
	return c
}

func (c *Controller) defaults() types.Configuration {
	cfg := types.DefaultConfiguration()
	cfg.FrequencyHz = c.d.DefaultHz
	return cfg
}

// State returns the current mode.
func (c *Controller) State() types.Mode { return c.st }

// Snapshot returns a copy of the live Context.
func (c *Controller) Snapshot() Context { return c.ctx }

// Config returns the live configuration.
func (c *Controller) Config() types.Configuration { return c.ctx.Config }

// Lines returns what the display currently shows.
func (c *Controller) Lines() [2]string { return c.lines }

func (c *Controller) now() uint32 {
	if c.d.Clock == nil {
		return c.ctx.NowMs
	}
	return c.d.Clock.Millis()
}

// Boot restores the snapshot in the boot slot (defaults if it is blank or
// unusable) and programs the DDS inside a reset bracket.
func (c *Controller) Boot() error {
	cfg, err := c.d.Slots.Recall(settings.BootSlot)
	switch errcode.Of(err) {
	case errcode.OK:
		if !c.usable(cfg) {
			println("[siggen] boot snapshot out of range, using defaults")
			cfg = c.defaults()
		}
	case errcode.EmptySlot, errcode.Corrupt:
		println("[siggen] no boot snapshot, using defaults")
		cfg = c.defaults()
	default:
		return err
	}
	c.ctx = NewContext(types.Configuration{}, c.d.Limits)
	c.ctx.NowMs = c.now()
	c.st = types.ModeRecall
	if err := c.handle(Loaded{Slot: settings.BootSlot, Cfg: cfg}); err != nil {
		return err
	}
	println("[siggen] boot", c.st.String(), "hz", c.ctx.Config.FrequencyHz)
	c.refresh()
	return nil
}

func (c *Controller) usable(cfg types.Configuration) bool {
	lim := c.d.Limits.MaxHz
	return cfg.Mode.Valid() && cfg.FrequencyHz < lim && cfg.SweepF1Hz < lim && cfg.SweepF2Hz < lim
}

// Tick samples the panel once: clock and encoder, then the button, then
// at most one keypad code. It is called every millisecond.
func (c *Controller) Tick() error {
	var enc int32
	if c.d.Encoder != nil {
		enc = c.d.Encoder.Count()
	}
	if err := c.handle(Tick{NowMs: c.now(), Encoder: enc}); err != nil {
		return err
	}
	if c.d.Button != nil && c.d.Button.Pressed() {
		if err := c.handle(Button{}); err != nil {
			return err
		}
	}
	if c.d.Keypad != nil {
		if code, ok := c.d.Keypad.Poll(); ok {
			if ev, ok := c.keys.Event(code); ok {
				if err := c.handle(ev); err != nil {
					return err
				}
			}
		}
	}
	c.refresh()
	return nil
}

// Handle feeds one event to the state machine and runs its effects.
// Transport and storage failures abort the remaining effects.
func (c *Controller) Handle(ev Event) error {
	err := c.handle(ev)
	c.refresh()
	return err
}

func (c *Controller) handle(ev Event) error {
	st, ctx, fx := Step(c.st, ev, c.ctx)
	c.st, c.ctx = st, ctx
	for _, f := range fx {
		if err := c.run(f); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) run(f Effect) error {
	switch e := f.(type) {
	case WriteFreq:
		if e.Bracket {
			return c.d.DDS.Apply(e.Hz, 0)
		}
		return c.d.DDS.WriteFrequency(e.Hz)
	case SyncEncoder:
		if c.d.Encoder != nil {
			c.d.Encoder.SetCount(e.Count)
		}
	case Save:
		if err := c.d.Slots.Store(e.Slot, e.Cfg); err != nil {
			return err
		}
		if e.Slot != settings.BootSlot {
			println("[siggen] stored slot", e.Slot)
		}
	case Load:
		cfg, err := c.d.Slots.Recall(e.Slot)
		switch errcode.Of(err) {
		case errcode.OK, errcode.EmptySlot, errcode.Corrupt:
		default:
			return err
		}
		println("[siggen] recall slot", e.Slot, string(errcode.Of(err)))
		return c.handle(Loaded{Slot: e.Slot, Cfg: cfg, Err: err})
	case Warn:
		c.warn = e.Text
		c.warnUntil = c.now() + c.d.WarnMs
	}
	return nil
}

// refresh redraws changed display rows and publishes the status.
func (c *Controller) refresh() {
	now := c.now()
	if c.warn != "" && int32(now-c.warnUntil) >= 0 {
		c.warn = ""
	}
	lines := Lines(c.st, c.ctx)
	if c.warn != "" {
		lines[1] = conv.Pad(c.warn, panel.Cols)
	}
	if c.d.Display != nil {
		for r := range lines {
			if !c.drawn || lines[r] != c.lines[r] {
				c.d.Display.TextAt(0, uint8(r), lines[r])
			}
		}
	}
	c.lines, c.drawn = lines, true

	if c.d.Conn == nil {
		return
	}
	s := types.Status{
		Mode:   c.st.String(),
		Hz:     c.ctx.Config.FrequencyHz,
		Buffer: c.ctx.Buf.String(),
		Lines:  lines,
		Config: c.ctx.Config,
	}
	if s == c.last {
		return
	}
	c.last = s
	s.TS = int64(now)
	c.d.Conn.Publish(c.d.Conn.NewMessage(topicState, s, true))
}

// Run drives Tick from src until ctx ends or a tick fails. A failure is
// fatal for the instrument and is returned.
func (c *Controller) Run(ctx context.Context, src TickSource) error {
	ticks := src.Ticks()
	for {
		select {
		case <-ctx.Done():
			println("[siggen] stopping")
			return nil
		case <-ticks:
			if err := c.Tick(); err != nil {
				println("[siggen] fatal:", err.Error())
				return err
			}
		}
	}
}
