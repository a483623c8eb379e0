package panel

import "ddsgen-go/x/shmring"

// KeyQueue buffers raw scan codes between the keypad scan interrupt and the
// control loop. Codes arriving while the queue is full are dropped.
type KeyQueue struct {
	r *shmring.Ring
}

// NewKeyQueue returns a queue holding up to depth codes (power of two).
func NewKeyQueue(depth int) *KeyQueue {
	return &KeyQueue{r: shmring.New(depth)}
}

// Push is called by the scanner. It never blocks.
func (q *KeyQueue) Push(code uint8) bool { return q.r.Put(code) }

// Poll implements Keypad.
func (q *KeyQueue) Poll() (uint8, bool) { return q.r.Get() }

// Dropped reports how many codes were lost to a full queue.
func (q *KeyQueue) Dropped() uint32 { return q.r.Drops() }
