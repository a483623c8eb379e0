package siggen

import (
	"errors"
	"testing"

	"ddsgen-go/services/settings"
	"ddsgen-go/types"
)

const maxHz = 12_000_000

func bootCtx(hz uint32) Context {
	cfg := types.DefaultConfiguration()
	cfg.FrequencyHz = hz
	return NewContext(cfg, DefaultLimits())
}

// feed runs events through Step and collects every effect.
func feed(st types.Mode, ctx Context, evs ...Event) (types.Mode, Context, []Effect) {
	var all []Effect
	for _, ev := range evs {
		var fx []Effect
		st, ctx, fx = Step(st, ev, ctx)
		all = append(all, fx...)
	}
	return st, ctx, all
}

func digits(s string) []Event {
	out := make([]Event, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, KeyDigit{D: s[i] - '0'})
	}
	return out
}

func seq(parts ...[]Event) []Event {
	var out []Event
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func one(ev Event) []Event { return []Event{ev} }

func writes(fx []Effect) []WriteFreq {
	var out []WriteFreq
	for _, f := range fx {
		if w, ok := f.(WriteFreq); ok {
			out = append(out, w)
		}
	}
	return out
}

func hasWarn(fx []Effect, text string) bool {
	for _, f := range fx {
		if w, ok := f.(Warn); ok && w.Text == text {
			return true
		}
	}
	return false
}

func TestModeDigitsEnter_SetsF1(t *testing.T) {
	st, ctx, _ := feed(types.ModeTrack, bootCtx(60000),
		KeyMode{}, KeyDigit{D: 1}, KeyDigit{D: 2}, KeyEnter{})
	if st != types.ModeSetF2 {
		t.Fatalf("state = %v, want set_f2", st)
	}
	if ctx.Config.SweepF1Hz != 12 {
		t.Fatalf("F1 = %d, want 12", ctx.Config.SweepF1Hz)
	}
	if !ctx.Buf.Empty() {
		t.Fatalf("buffer not cleared: %q", ctx.Buf.String())
	}
}

func TestWrapCount(t *testing.T) {
	cases := []struct {
		in   int32
		want int32
	}{
		{-1, maxHz - 1},
		{maxHz, 0},
		{maxHz - 1, maxHz - 1},
		{0, 0},
		{-50, maxHz - 50},
		{maxHz + 3, 3},
	}
	for _, c := range cases {
		if got := WrapCount(c.in, maxHz); got != c.want {
			t.Fatalf("WrapCount(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTrackTick_FollowsWrappedEncoder(t *testing.T) {
	ctx := bootCtx(0)
	ctx.Encoder = 0
	_, ctx, fx := feed(types.ModeTrack, ctx, Tick{NowMs: 1, Encoder: -1})
	if len(fx) != 2 {
		t.Fatalf("effects = %#v", fx)
	}
	if s, ok := fx[0].(SyncEncoder); !ok || s.Count != maxHz-1 {
		t.Fatalf("first effect = %#v, want SyncEncoder{%d}", fx[0], maxHz-1)
	}
	if w, ok := fx[1].(WriteFreq); !ok || w.Hz != maxHz-1 || w.Bracket {
		t.Fatalf("second effect = %#v", fx[1])
	}
	if ctx.Config.FrequencyHz != maxHz-1 {
		t.Fatalf("frequency = %d", ctx.Config.FrequencyHz)
	}

	// Unchanged count writes nothing.
	_, _, fx = feed(types.ModeTrack, ctx, Tick{NowMs: 2, Encoder: maxHz - 1})
	if len(fx) != 0 {
		t.Fatalf("idle tick produced %#v", fx)
	}
	// +1 at the top wraps to 0.
	_, ctx, _ = feed(types.ModeTrack, ctx, Tick{NowMs: 3, Encoder: maxHz})
	if ctx.Config.FrequencyHz != 0 || ctx.Encoder != 0 {
		t.Fatalf("after wrap: hz=%d enc=%d", ctx.Config.FrequencyHz, ctx.Encoder)
	}
}

func TestTrackTick_IgnoresEncoderWhileTyping(t *testing.T) {
	_, ctx, _ := feed(types.ModeTrack, bootCtx(60000), KeyDigit{D: 5})
	_, ctx, fx := feed(types.ModeTrack, ctx, Tick{NowMs: 1, Encoder: 70000})
	if len(writes(fx)) != 0 || ctx.Config.FrequencyHz != 60000 {
		t.Fatalf("encoder applied with non-empty buffer: %#v", fx)
	}
}

func TestTrackEnter(t *testing.T) {
	cases := []struct {
		name     string
		keys     string
		wantHz   uint32
		wantWarn bool
	}{
		{"commit", "1000", 1000, false},
		{"max minus one", "11999999", 11_999_999, false},
		{"at max", "12000000", 60000, true},
		{"empty commits zero", "", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st, ctx, fx := feed(types.ModeTrack, bootCtx(60000), seq(digits(c.keys), one(KeyEnter{}))...)
			if st != types.ModeTrack {
				t.Fatalf("state = %v", st)
			}
			if ctx.Config.FrequencyHz != c.wantHz {
				t.Fatalf("frequency = %d, want %d", ctx.Config.FrequencyHz, c.wantHz)
			}
			if !ctx.Buf.Empty() {
				t.Fatal("buffer not cleared")
			}
			if hasWarn(fx, WarnTooHigh) != c.wantWarn {
				t.Fatalf("warn mismatch: %#v", fx)
			}
			if c.wantWarn {
				if len(writes(fx)) != 0 {
					t.Fatalf("rejected entry wrote DDS: %#v", fx)
				}
				return
			}
			if w := writes(fx); len(w) != 1 || w[0].Hz != c.wantHz {
				t.Fatalf("writes = %#v", w)
			}
			if last, ok := fx[len(fx)-1].(SyncEncoder); !ok || last.Count != int32(c.wantHz) {
				t.Fatalf("encoder not synced: %#v", fx)
			}
		})
	}
}

func TestPause(t *testing.T) {
	st, ctx, _ := feed(types.ModeTrack, bootCtx(60000), Button{})
	if st != types.ModeTrackPause {
		t.Fatalf("state = %v", st)
	}
	st, ctx, fx := feed(st, ctx, Tick{NowMs: 5, Encoder: 70000})
	if len(writes(fx)) != 0 || ctx.Config.FrequencyHz != 60000 {
		t.Fatalf("paused tick changed output: %#v", fx)
	}
	for _, confirm := range []Event{Button{}, KeyEnter{}} {
		s, c, fx := feed(st, ctx, confirm)
		if s != types.ModeTrack || c.Config.FrequencyHz != 70000 {
			t.Fatalf("%T: state=%v hz=%d", confirm, s, c.Config.FrequencyHz)
		}
		if w := writes(fx); len(w) != 1 || w[0].Hz != 70000 {
			t.Fatalf("%T: writes = %#v", confirm, w)
		}
	}
}

func sweepTo(t *testing.T, now uint32) (types.Mode, Context) {
	t.Helper()
	ctx := bootCtx(60000)
	st, ctx, _ := feed(types.ModeTrack, ctx, Tick{NowMs: now, Encoder: 60000})
	st, ctx, fx := feed(st, ctx, seq(
		one(KeyMode{}), digits("1000"), one(KeyEnter{}),
		digits("2000"), one(Button{}),
		digits("5"), one(KeyEnter{}),
	)...)
	if st != types.ModeSweeping {
		t.Fatalf("state = %v, want sweep", st)
	}
	if w := writes(fx); len(w) != 1 || w[0].Hz != 1000 {
		t.Fatalf("sweep start writes = %#v", w)
	}
	return st, ctx
}

func TestSweepSetupAndAdvance(t *testing.T) {
	st, ctx := sweepTo(t, 100)
	c := ctx.Config
	if c.SweepF1Hz != 1000 || c.SweepF2Hz != 2000 || c.SweepDurationMs != 5000 || c.RateMilliHzMs != 200 {
		t.Fatalf("config = %+v", c)
	}
	if c.Mode != types.ModeSweeping {
		t.Fatalf("config mode = %v", c.Mode)
	}
	steps := []struct {
		now  uint32
		want uint32
	}{
		{1100, 1200},
		{3100, 1600},
		{5100, 2000}, // bound reached
		{5101, 1000}, // restart
		{6101, 1200},
	}
	for _, s := range steps {
		st, ctx, _ = feed(st, ctx, Tick{NowMs: s.now, Encoder: ctx.Encoder})
		if ctx.Config.FrequencyHz != s.want {
			t.Fatalf("t=%d: hz = %d, want %d", s.now, ctx.Config.FrequencyHz, s.want)
		}
	}
	if st != types.ModeSweeping {
		t.Fatalf("left sweep: %v", st)
	}
}

func TestSweepExits(t *testing.T) {
	st, ctx := sweepTo(t, 0)
	s, c, fx := feed(st, ctx, KeyMode{})
	if s != types.ModeTrack || c.Config.FrequencyHz != 60000 {
		t.Fatalf("KeyMode: state=%v hz=%d", s, c.Config.FrequencyHz)
	}
	if len(fx) != 2 {
		t.Fatalf("KeyMode effects = %#v", fx)
	}
	if _, ok := fx[1].(SyncEncoder); !ok {
		t.Fatalf("encoder not synced: %#v", fx)
	}

	st, ctx, _ = feed(st, ctx, KeyDigit{D: 7})
	s, c, _ = feed(st, ctx, Button{})
	if s != types.ModeSetF1 || !c.Buf.Empty() {
		t.Fatalf("Button: state=%v buf=%q", s, c.Buf.String())
	}
}

func TestSetMenus_RejectAndCancel(t *testing.T) {
	st, ctx, fx := feed(types.ModeTrack, bootCtx(500), seq(one(KeyMode{}), digits("12000000"), one(KeyEnter{}))...)
	if st != types.ModeSetF1 || !hasWarn(fx, WarnTooHigh) {
		t.Fatalf("F1 too high: state=%v fx=%#v", st, fx)
	}
	st, ctx, _ = feed(st, ctx, seq(digits("1"), one(KeyEnter{}), digits("2"), one(KeyEnter{}))...)
	if st != types.ModeSetTime {
		t.Fatalf("state = %v", st)
	}
	s, _, fx := feed(st, ctx, KeyDigit{D: 0}, KeyEnter{})
	if s != types.ModeSetTime || !hasWarn(fx, WarnBadTime) {
		t.Fatalf("zero duration accepted: %v %#v", s, fx)
	}
	s, _, fx = feed(st, ctx, seq(digits("4294968"), one(KeyEnter{}))...)
	if s != types.ModeSetTime || !hasWarn(fx, WarnBadTime) {
		t.Fatalf("overlong duration accepted: %v %#v", s, fx)
	}
	s, c, _ := feed(st, ctx, KeyDigit{D: 3}, KeyMode{})
	if s != types.ModeTrack || c.Config.FrequencyHz != 500 || !c.Buf.Empty() {
		t.Fatalf("cancel: state=%v hz=%d buf=%q", s, c.Config.FrequencyHz, c.Buf.String())
	}
}

// sweepConsistent reports whether the stored rate matches the bounds:
// distinct bounds need a non-zero rate pointing from F1 to F2.
func sweepConsistent(c types.Configuration) bool {
	switch {
	case c.SweepF1Hz == c.SweepF2Hz:
		return c.RateMilliHzMs == 0
	case c.SweepF2Hz > c.SweepF1Hz:
		return c.RateMilliHzMs > 0
	}
	return c.RateMilliHzMs < 0
}

func TestSetMenus_CancelRestoresSweepSettings(t *testing.T) {
	st, ctx, fx := feed(types.ModeTrack, bootCtx(500), seq(
		one(KeyMode{}), digits("100"), one(KeyEnter{}),
		digits("200"), one(KeyEnter{}),
		one(KeyMode{}), one(KeyStore{}), one(KeyDigit{D: 3}),
	)...)
	if st != types.ModeTrack {
		t.Fatalf("state = %v", st)
	}
	if c := ctx.Config; c.SweepF1Hz != 0 || c.SweepF2Hz != 0 || c.RateMilliHzMs != 0 {
		t.Fatalf("cancelled edits kept: %+v", c)
	}
	var saves int
	for _, f := range fx {
		if sv, ok := f.(Save); ok {
			saves++
			if !sweepConsistent(sv.Cfg) {
				t.Fatalf("slot %d saved inconsistent sweep: %+v", sv.Slot, sv.Cfg)
			}
		}
	}
	if saves != 2 {
		t.Fatalf("saves = %d, want slot and boot slot", saves)
	}
}

func TestSetMenus_CancelAfterSweepKeepsOldRate(t *testing.T) {
	st, ctx := sweepTo(t, 0)
	// Re-enter the menus from the sweep, reverse the bounds, then cancel.
	st, ctx, _ = feed(st, ctx, seq(
		one(Button{}), digits("3000"), one(KeyEnter{}),
		digits("100"), one(KeyEnter{}),
		one(KeyMode{}),
	)...)
	c := ctx.Config
	if st != types.ModeTrack || c.SweepF1Hz != 1000 || c.SweepF2Hz != 2000 || c.RateMilliHzMs != 200 || c.SweepDurationMs != 5000 {
		t.Fatalf("state=%v config=%+v, want the previous sweep", st, c)
	}
	if !sweepConsistent(c) {
		t.Fatalf("inconsistent sweep: %+v", c)
	}
}

func TestStore(t *testing.T) {
	cases := []struct {
		name string
		from func(t *testing.T) (types.Mode, Context)
	}{
		{"track", func(*testing.T) (types.Mode, Context) { return types.ModeTrack, bootCtx(1234) }},
		{"sweep", func(t *testing.T) (types.Mode, Context) { return sweepTo(t, 0) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			from, ctx := c.from(t)
			st, ctx, _ := feed(from, ctx, KeyStore{})
			if st != types.ModeStore || ctx.Return != from {
				t.Fatalf("state=%v return=%v", st, ctx.Return)
			}
			st, ctx, fx := feed(st, ctx, KeyDigit{D: 3})
			if st != from {
				t.Fatalf("returned to %v, want %v", st, from)
			}
			if len(fx) != 2 {
				t.Fatalf("effects = %#v", fx)
			}
			s0, s1 := fx[0].(Save), fx[1].(Save)
			if s0.Slot != 3 || s1.Slot != settings.BootSlot {
				t.Fatalf("slots = %d, %d", s0.Slot, s1.Slot)
			}
			if s0.Cfg != ctx.Config || s0.Cfg.Mode != from {
				t.Fatalf("saved %+v, live %+v", s0.Cfg, ctx.Config)
			}
		})
	}
}

func TestStoreRecall_DeleteCancels(t *testing.T) {
	for _, k := range []Event{KeyStore{}, KeyRecall{}} {
		st, ctx, _ := feed(types.ModeTrack, bootCtx(1), k)
		st, _, fx := feed(st, ctx, KeyEnter{}, Button{}, KeyDelete{})
		if st != types.ModeTrack || len(fx) != 0 {
			t.Fatalf("%T: state=%v fx=%#v", k, st, fx)
		}
	}
}

func TestRecall(t *testing.T) {
	st, ctx, _ := feed(types.ModeTrack, bootCtx(1), Tick{NowMs: 40, Encoder: 1}, KeyRecall{})
	st, ctx, fx := feed(st, ctx, KeyDigit{D: 4})
	if st != types.ModeRecall || len(fx) != 1 || fx[0] != (Load{Slot: 4}) {
		t.Fatalf("state=%v fx=%#v", st, fx)
	}

	saved := types.Configuration{
		Mode: types.ModeSweeping, FrequencyHz: 1500,
		SweepF1Hz: 1000, SweepF2Hz: 2000, SweepDurationMs: 5000, RateMilliHzMs: 200,
	}
	s, c, fx := feed(st, ctx, Loaded{Slot: 4, Cfg: saved})
	if s != types.ModeSweeping || c.Config != saved {
		t.Fatalf("state=%v cfg=%+v", s, c.Config)
	}
	if w := writes(fx); len(w) != 1 || w[0] != (WriteFreq{Hz: 1500, Bracket: true}) {
		t.Fatalf("writes = %#v", w)
	}
	if c.Encoder != 1500 || c.Sweep.StartMs != 40 {
		t.Fatalf("encoder=%d sweep start=%d", c.Encoder, c.Sweep.StartMs)
	}

	s, c, fx = feed(st, ctx, Loaded{Slot: 4, Err: errors.New("blank")})
	if s != types.ModeTrack || !hasWarn(fx, WarnEmptySlot) || c.Config.FrequencyHz != 1 {
		t.Fatalf("blank slot: state=%v fx=%#v", s, fx)
	}

	bad := saved
	bad.FrequencyHz = maxHz
	if s, _, fx = feed(st, ctx, Loaded{Slot: 4, Cfg: bad}); s != types.ModeTrack || !hasWarn(fx, WarnBadSlot) {
		t.Fatalf("out of range slot: state=%v fx=%#v", s, fx)
	}

	odd := saved
	odd.Mode = types.ModeStore
	if s, _, _ = feed(st, ctx, Loaded{Slot: 4, Cfg: odd}); s != types.ModeTrack {
		t.Fatalf("store mode recalled as %v", s)
	}
}

func TestLoadedOutsideRecallIgnored(t *testing.T) {
	ctx := bootCtx(1)
	st, c, fx := feed(types.ModeTrack, ctx, Loaded{Cfg: types.Configuration{FrequencyHz: 9}})
	if st != types.ModeTrack || c.Config != ctx.Config || len(fx) != 0 {
		t.Fatalf("stray Loaded applied: %v %+v %#v", st, c.Config, fx)
	}
}

func TestDeleteIsBackspace(t *testing.T) {
	_, ctx, _ := feed(types.ModeTrack, bootCtx(1), seq(digits("123"), one(KeyDelete{}))...)
	if ctx.Buf.String() != "12" {
		t.Fatalf("buffer = %q", ctx.Buf.String())
	}
	_, ctx, fx := feed(types.ModeTrack, bootCtx(1), KeyDelete{})
	if !ctx.Buf.Empty() || len(fx) != 0 {
		t.Fatal("delete on empty buffer not a no-op")
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	ctx := bootCtx(1)
	_, _, _ = Step(types.ModeTrack, KeyDigit{D: 9}, ctx)
	if !ctx.Buf.Empty() {
		t.Fatal("caller's context modified")
	}
}
