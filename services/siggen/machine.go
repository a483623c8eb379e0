package siggen

import (
	"ddsgen-go/services/settings"
	"ddsgen-go/types"
	"ddsgen-go/x/ramp"
)

// Step is the instrument's transition function. It is pure: the returned
// Context is a modified copy and all I/O is described by the effects.
func Step(st types.Mode, ev Event, ctx Context) (types.Mode, Context, []Effect) {
	m := machine{ctx: ctx}
	next := m.step(st, ev)
	if next != types.ModeStore && next != types.ModeRecall {
		m.ctx.Config.Mode = next
	}
	return next, m.ctx, m.fx
}

type machine struct {
	ctx Context
	fx  []Effect
}

func (m *machine) emit(e Effect) { m.fx = append(m.fx, e) }

func (m *machine) warn(text string) { m.emit(Warn{Text: text}) }

func (m *machine) setFrequency(hz uint32, bracket bool) {
	m.ctx.Config.FrequencyHz = hz
	m.emit(WriteFreq{Hz: hz, Bracket: bracket})
}

func (m *machine) syncEncoder(n uint32) {
	m.ctx.Encoder = int32(n)
	m.emit(SyncEncoder{Count: int32(n)})
}

// restoreTrack returns to Track at the frequency saved on leaving it.
func (m *machine) restoreTrack() types.Mode {
	m.setFrequency(m.ctx.TrackHz, false)
	m.syncEncoder(m.ctx.TrackHz)
	return types.ModeTrack
}

func (m *machine) step(st types.Mode, ev Event) types.Mode {
	switch e := ev.(type) {
	case Tick:
		return m.tick(st, e)
	case Button:
		return m.confirm(st, true)
	case KeyEnter:
		return m.confirm(st, false)
	case KeyDigit:
		return m.digit(st, e.D)
	case KeyDelete:
		if st == types.ModeStore || st == types.ModeRecall {
			return m.ctx.Return
		}
		m.ctx.Buf.Backspace()
		return st
	case KeyMode:
		return m.mode(st)
	case KeyStore:
		if st == types.ModeTrack || st == types.ModeSweeping {
			m.ctx.Return = st
			return types.ModeStore
		}
		return st
	case KeyRecall:
		if st == types.ModeTrack || st == types.ModeSweeping {
			m.ctx.Return = st
			return types.ModeRecall
		}
		return st
	case Loaded:
		if st != types.ModeRecall {
			return st
		}
		return m.loaded(e)
	}
	return st
}

func (m *machine) tick(st types.Mode, e Tick) types.Mode {
	m.ctx.NowMs = e.NowMs
	w := WrapCount(e.Encoder, m.ctx.Limits.MaxHz)
	if w != e.Encoder {
		m.emit(SyncEncoder{Count: w})
	}
	m.ctx.Encoder = w

	active := st
	if st == types.ModeStore || st == types.ModeRecall {
		active = m.ctx.Return
	}
	switch active {
	case types.ModeTrack:
		if m.ctx.Buf.Empty() && uint32(w) != m.ctx.Config.FrequencyHz {
			m.setFrequency(uint32(w), false)
		}
	case types.ModeSweeping:
		if hz := m.ctx.Sweep.At(e.NowMs); hz != m.ctx.Config.FrequencyHz {
			m.setFrequency(hz, false)
		}
	}
	return st
}

// confirm handles Enter and the push button.
func (m *machine) confirm(st types.Mode, button bool) types.Mode {
	c := &m.ctx.Config
	switch st {
	case types.ModeTrack:
		if button {
			return types.ModeTrackPause
		}
		hz := m.ctx.Buf.Value()
		m.ctx.Buf.Clear()
		if hz >= m.ctx.Limits.MaxHz {
			m.warn(WarnTooHigh)
			return st
		}
		m.setFrequency(hz, false)
		m.syncEncoder(hz)
		return st

	case types.ModeTrackPause:
		m.ctx.Buf.Clear()
		m.setFrequency(uint32(m.ctx.Encoder), false)
		return types.ModeTrack

	case types.ModeSetF1, types.ModeSetF2:
		hz := m.ctx.Buf.Value()
		m.ctx.Buf.Clear()
		if hz >= m.ctx.Limits.MaxHz {
			m.warn(WarnTooHigh)
			return st
		}
		if st == types.ModeSetF1 {
			c.SweepF1Hz = hz
			return types.ModeSetF2
		}
		c.SweepF2Hz = hz
		return types.ModeSetTime

	case types.ModeSetTime:
		secs := m.ctx.Buf.Value()
		m.ctx.Buf.Clear()
		if secs == 0 || secs > m.ctx.Limits.MaxSweepSeconds {
			m.warn(WarnBadTime)
			return st
		}
		sw, err := ramp.NewSweep(c.SweepF1Hz, c.SweepF2Hz, secs*1000, m.ctx.NowMs)
		if err != nil {
			m.warn(WarnBadTime)
			return st
		}
		c.SweepDurationMs = secs * 1000
		c.RateMilliHzMs = sw.Rate
		m.ctx.Sweep = sw
		m.setFrequency(sw.F1, false)
		return types.ModeSweeping

	case types.ModeSweeping:
		m.ctx.Buf.Clear()
		m.ctx.Saved = sweepOf(*c)
		return types.ModeSetF1
	}
	return st
}

func (m *machine) digit(st types.Mode, d uint8) types.Mode {
	switch st {
	case types.ModeStore:
		cfg := m.ctx.Config
		cfg.Mode = m.ctx.Return
		m.emit(Save{Slot: int(d), Cfg: cfg})
		m.emit(Save{Slot: settings.BootSlot, Cfg: cfg})
		m.ctx.Buf.Clear()
		return m.ctx.Return
	case types.ModeRecall:
		m.emit(Load{Slot: int(d)})
		return st
	}
	if d <= 9 {
		m.ctx.Buf.Push('0' + d)
	}
	return st
}

func (m *machine) mode(st types.Mode) types.Mode {
	switch st {
	case types.ModeTrack:
		m.ctx.TrackHz = m.ctx.Config.FrequencyHz
		m.ctx.Saved = sweepOf(m.ctx.Config)
		return types.ModeSetF1
	case types.ModeSetF1, types.ModeSetF2, types.ModeSetTime:
		m.ctx.Buf.Clear()
		m.ctx.Saved.applyTo(&m.ctx.Config)
		return m.restoreTrack()
	case types.ModeSweeping:
		return m.restoreTrack()
	}
	return st
}

// loaded applies a recalled configuration wholesale.
func (m *machine) loaded(e Loaded) types.Mode {
	if e.Err != nil {
		m.warn(WarnEmptySlot)
		return m.ctx.Return
	}
	cfg := e.Cfg
	lim := m.ctx.Limits.MaxHz
	if cfg.FrequencyHz >= lim || cfg.SweepF1Hz >= lim || cfg.SweepF2Hz >= lim {
		m.warn(WarnBadSlot)
		return m.ctx.Return
	}
	next := cfg.Mode
	if next == types.ModeStore || next == types.ModeRecall || !next.Valid() {
		next = types.ModeTrack
	}
	if next == types.ModeSweeping {
		sw, err := ramp.NewSweep(cfg.SweepF1Hz, cfg.SweepF2Hz, cfg.SweepDurationMs, m.ctx.NowMs)
		if err != nil {
			next = types.ModeTrack
		} else {
			cfg.RateMilliHzMs = sw.Rate
			m.ctx.Sweep = sw
		}
	}
	m.ctx.Config = cfg
	m.ctx.TrackHz = cfg.FrequencyHz
	m.ctx.Buf.Clear()
	m.setFrequency(cfg.FrequencyHz, true)
	m.syncEncoder(cfg.FrequencyHz)
	return next
}
