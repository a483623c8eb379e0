package siggen

import (
	"ddsgen-go/services/panel"
	"ddsgen-go/types"
	"ddsgen-go/x/conv"
)

var modeLabels = [...]string{
	types.ModeTrack:      "TRACK",
	types.ModeTrackPause: "PAUSE",
	types.ModeSetF1:      "F1",
	types.ModeSetF2:      "F2",
	types.ModeSetTime:    "TIME",
	types.ModeSweeping:   "SWEEP",
	types.ModeStore:      "STORE",
	types.ModeRecall:     "RECALL",
}

// Lines renders the two display rows for st.
//
//	TRACK   60000Hz
//	> 123
func Lines(st types.Mode, ctx Context) [2]string {
	label := "?"
	if int(st) < len(modeLabels) {
		label = modeLabels[st]
	}
	c := ctx.Config
	var top, bottom string
	switch st {
	case types.ModeTrackPause:
		top = conv.Pad(label, 6) + conv.Field(uint64(ctx.Encoder), 8) + "Hz"
	case types.ModeSetF1:
		top = conv.Pad(label, 6) + conv.Field(uint64(c.SweepF1Hz), 8) + "Hz"
	case types.ModeSetF2:
		top = conv.Pad(label, 6) + conv.Field(uint64(c.SweepF2Hz), 8) + "Hz"
	case types.ModeSetTime:
		top = conv.Pad(label, 6) + conv.Field(uint64(c.SweepDurationMs/1000), 8) + " s"
	case types.ModeStore, types.ModeRecall:
		top = conv.Pad(label, 7) + "SLOT 0-9"
		bottom = "DEL=CANCEL"
	default:
		top = conv.Pad(label, 6) + conv.Field(uint64(c.FrequencyHz), 8) + "Hz"
	}
	if bottom == "" {
		bottom = "> " + ctx.Buf.String()
	}
	return [2]string{conv.Pad(top, panel.Cols), conv.Pad(bottom, panel.Cols)}
}
