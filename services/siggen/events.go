package siggen

import "ddsgen-go/types"

// Event is one input to Step.
type Event interface{ isEvent() }

// Tick is the 1 ms heartbeat with the clock and raw encoder count sampled
// inside a critical section.
type Tick struct {
	NowMs   uint32
	Encoder int32
}

// Button is one push-button press.
type Button struct{}

type KeyDigit struct{ D uint8 }
type KeyEnter struct{}
type KeyMode struct{}
type KeyStore struct{}
type KeyRecall struct{}
type KeyDelete struct{}

// Loaded carries the result of a Load effect back into the machine. Err is
// set for a blank or corrupt slot.
type Loaded struct {
	Slot int
	Cfg  types.Configuration
	Err  error
}

func (Tick) isEvent()      {}
func (Button) isEvent()    {}
func (KeyDigit) isEvent()  {}
func (KeyEnter) isEvent()  {}
func (KeyMode) isEvent()   {}
func (KeyStore) isEvent()  {}
func (KeyRecall) isEvent() {}
func (KeyDelete) isEvent() {}
func (Loaded) isEvent()    {}
