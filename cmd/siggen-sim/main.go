// cmd/siggen-sim runs the signal generator on a host. Front-panel input
// comes from stdin, the display is printed whenever it changes, and the
// DDS words go to the configured transport (in memory by default).
//
// Usage: siggen-sim [config.yaml]
//
// Input, one or more tokens per line:
//
//	0-9   digit key        m  MODE      e  ENTER
//	s     STORE            r  RECALL    d  DELETE
//	b     encoder button   +N / -N  turn the encoder N detents
//	q     quit
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"time"

	"ddsgen-go/bus"
	"ddsgen-go/drivers/ad9833"
	"ddsgen-go/internal/platform"
	"ddsgen-go/services/config"
	"ddsgen-go/services/heartbeat"
	"ddsgen-go/services/panel"
	"ddsgen-go/services/settings"
	"ddsgen-go/services/siggen"
	"ddsgen-go/types"
	"ddsgen-go/x/strx"
	"ddsgen-go/x/timex"
)

func main() {
	log.SetFlags(log.Ltime)

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	keys, err := cfg.ScanMap()
	if err != nil {
		log.Fatalf("keymap: %v", err)
	}

	link, rec, err := platform.OpenTransport(cfg.Transport)
	if err != nil {
		log.Fatalf("transport: %v", err)
	}
	defer link.Close()
	dev := ad9833.New(link, cfg.DDS())
	if err := dev.Init(0, 0); err != nil {
		log.Fatalf("dds init: %v", err)
	}

	store, closeStore, err := openStorage(cfg.StoragePath)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := bus.NewBus(8)
	config.NewConfigService(cfg).Start(ctx, b.NewConnection("config"))
	hb := heartbeat.New(time.Millisecond, time.Duration(cfg.HeartbeatLogS)*time.Second)
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	in := &frontPanel{
		enc:   &panel.Counter{},
		btn:   &panel.Latch{},
		queue: panel.NewKeyQueue(16),
		codes: reverseMap(&keys),
	}
	go showState(ctx, b.NewConnection("console"))
	go func() {
		in.readLoop(os.Stdin)
		stop()
	}()

	c := siggen.New(siggen.Deps{
		DDS:       dev,
		Slots:     settings.New(store),
		Encoder:   in.enc,
		Clock:     timex.NewMonotonic(),
		Button:    in.btn,
		Keypad:    in.queue,
		Display:   panel.NewTextDisplay(),
		Conn:      b.NewConnection("siggen"),
		Keys:      &keys,
		Limits:    cfg.Limits(),
		DefaultHz: cfg.DefaultHz,
		WarnMs:    cfg.WarnMs,
	})
	if err := c.Boot(); err != nil {
		log.Fatalf("boot: %v", err)
	}
	log.Printf("device %s, transport %s, output %d Hz", cfg.Device, cfg.Transport.Kind, dev.Frequency())

	if err := c.Run(ctx, hb); err != nil {
		log.Fatalf("run: %v", err)
	}
	if rec != nil {
		log.Printf("dds: %d words written, output %d Hz", len(rec.Words), dev.Frequency())
	}
	if n := in.queue.Dropped(); n > 0 {
		log.Printf("keypad: %d keys dropped", n)
	}
}

func loadConfig(args []string) (*config.Config, error) {
	if len(args) > 0 {
		return config.Load(args[0])
	}
	return config.Lookup(strx.Coalesce(os.Getenv("SIGGEN_DEVICE"), "sim"))
}

// openStorage backs the slots with a file, or RAM when path is empty.
func openStorage(path string) (settings.Storage, func(), error) {
	if path == "" {
		return settings.NewMemStorage(settings.Size), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// showState prints the display each time the generator publishes a new
// status.
func showState(ctx context.Context, conn *bus.Connection) {
	sub := conn.Subscribe(bus.T("siggen", "state"))
	defer conn.Disconnect()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-sub.Channel():
			if !ok {
				return
			}
			st, ok := m.Payload.(types.Status)
			if !ok {
				continue
			}
			log.Printf("[%s] %d Hz\n  |%s|\n  |%s|", st.Mode, st.Hz, st.Lines[0], st.Lines[1])
		}
	}
}

var errQuit = errors.New("quit")
