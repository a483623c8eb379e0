//go:build rp2040

package main

import (
	"context"
	"time"

	"ddsgen-go/bus"
	"ddsgen-go/drivers/ad9833"
	"ddsgen-go/internal/platform"
	"ddsgen-go/services/config"
	"ddsgen-go/services/heartbeat"
	"ddsgen-go/services/settings"
	"ddsgen-go/services/siggen"
)

const device = "pico"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	cfg, err := config.Lookup(device)
	if err != nil {
		halt(err)
	}
	keys, err := cfg.ScanMap()
	if err != nil {
		halt(err)
	}
	board, err := platform.NewBoard(uint32(cfg.Transport.SPIHz))
	if err != nil {
		halt(err)
	}

	dev := ad9833.New(board.DDS, cfg.DDS())
	if err := dev.Init(0, 0); err != nil {
		halt(err)
	}

	ctx := context.Background()
	b := bus.NewBus(4)
	config.NewConfigService(cfg).Start(ctx, b.NewConnection("config"))
	hb := heartbeat.New(time.Millisecond, time.Duration(cfg.HeartbeatLogS)*time.Second)
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))
	board.StartTimers()

	c := siggen.New(siggen.Deps{
		DDS:       dev,
		Slots:     settings.New(board.Storage),
		Encoder:   board.Encoder,
		Clock:     board.Clock,
		Button:    board.Button,
		Keypad:    board.Keys,
		Display:   board.Display,
		Conn:      b.NewConnection("siggen"),
		Keys:      &keys,
		Limits:    cfg.Limits(),
		DefaultHz: cfg.DefaultHz,
		WarnMs:    cfg.WarnMs,
	})
	if err := c.Boot(); err != nil {
		halt(err)
	}
	halt(c.Run(ctx, hb))
}

// halt parks the firmware after a fatal error; the output stays at the
// last programmed frequency.
func halt(err error) {
	if err != nil {
		println("[main] fatal:", err.Error())
	}
	for {
		time.Sleep(time.Second)
	}
}
