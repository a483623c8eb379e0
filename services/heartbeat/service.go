// Package heartbeat is the control-loop tick source. It turns a periodic
// timer into coalescing ticks and logs a liveness line at a slower rate.
package heartbeat

import (
	"context"
	"time"

	"ddsgen-go/bus"
)

var topicConfigHeartbeat = bus.T("config", "heartbeat")

// Ticker delivers one tick per Period. Ticks the consumer has not taken
// yet are merged, so a slow loop never builds a backlog.
type Ticker struct {
	Period   time.Duration // default 1 ms
	LogEvery time.Duration // liveness log interval, 0 disables

	ch    chan struct{}
	count uint32
}

func New(period, logEvery time.Duration) *Ticker {
	if period <= 0 {
		period = time.Millisecond
	}
	return &Ticker{Period: period, LogEvery: logEvery, ch: make(chan struct{}, 1)}
}

// Ticks implements siggen.TickSource.
func (s *Ticker) Ticks() <-chan struct{} { return s.ch }

func (s *Ticker) serviceLoop(ctx context.Context, conn *bus.Connection) {
	var cfgC <-chan *bus.Message
	if conn != nil {
		cfgSub := conn.Subscribe(topicConfigHeartbeat)
		defer conn.Unsubscribe(cfgSub)
		cfgC = cfgSub.Channel()
	}

	tick := time.NewTicker(s.Period)
	defer tick.Stop()

	var logC <-chan time.Time
	var logT *time.Ticker
	if s.LogEvery > 0 {
		logT = time.NewTicker(s.LogEvery)
		defer logT.Stop()
		logC = logT.C
	}

	// loop until context is cancelled, respond to tick and config changes
	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			s.count++
			select {
			case s.ch <- struct{}{}:
			default:
			}
		case t := <-logC:
			println("[heartbeat]", t.Format("15:04:05"), "ticks", s.count)
		case msg := <-cfgC:
			// {"log_every_s": n} changes the liveness interval.
			if m, ok := msg.Payload.(map[string]any); ok {
				if iv, ok := m["log_every_s"].(float64); ok && iv > 0 && logT != nil {
					logT.Reset(time.Duration(iv * float64(time.Second)))
					println("[heartbeat] log interval set to", iv, "seconds")
				}
			}
		}
	}
}

// Start runs the ticker until ctx ends. conn may be nil.
func (s *Ticker) Start(ctx context.Context, conn *bus.Connection) error {
	if s.ch == nil {
		s.ch = make(chan struct{}, 1)
	}
	if s.Period <= 0 {
		s.Period = time.Millisecond
	}
	go s.serviceLoop(ctx, conn)
	return nil
}

// Manual is a tick source driven by the caller (tests, step-by-step
// simulation).
type Manual struct {
	ch chan struct{}
}

func NewManual() *Manual { return &Manual{ch: make(chan struct{})} }

func (m *Manual) Ticks() <-chan struct{} { return m.ch }

// Step delivers n ticks, blocking until each is taken.
func (m *Manual) Step(n int) {
	for i := 0; i < n; i++ {
		m.ch <- struct{}{}
	}
}
