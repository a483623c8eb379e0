// Package settings persists Configuration snapshots in fixed, indexed slots.
//
// Slots 0..9 are operator save points selected by a digit key. Slot 10
// holds the live/boot snapshot. Slots are never deleted, only overwritten.
package settings

import (
	"io"
	"sync"

	"ddsgen-go/errcode"
	"ddsgen-go/types"
	"ddsgen-go/x/conv"
)

const (
	UserSlots = 10
	BootSlot  = 10
	SlotCount = 11

	// Size is the number of bytes the slot table occupies.
	Size = SlotCount * RecordSize
)

// Store reads and writes slots. Operations are serialised: a store or
// recall blocks until the medium completes and never interleaves with
// another one.
type Store struct {
	mu  sync.Mutex
	dev Storage

	buf [RecordSize]byte
}

func New(dev Storage) *Store {
	return &Store{dev: dev}
}

// ValidSlot reports whether slot addresses a record.
func ValidSlot(slot int) bool { return slot >= 0 && slot < SlotCount }

func checkSlot(op string, slot int) error {
	if !ValidSlot(slot) {
		return &errcode.E{C: errcode.SlotOutOfRange, Op: op, Msg: "slot " + conv.Itos(int64(slot))}
	}
	return nil
}

// Store writes cfg to slot.
func (s *Store) Store(slot int, cfg types.Configuration) error {
	if err := checkSlot("store", slot); err != nil {
		return err
	}
	if !cfg.Mode.Valid() {
		return &errcode.E{C: errcode.InvalidParams, Op: "store", Msg: "invalid mode"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	encodeRecord(&s.buf, cfg)
	n, err := s.dev.WriteAt(s.buf[:], int64(slot)*RecordSize)
	if err == nil && n != RecordSize {
		err = io.ErrShortWrite
	}
	return errcode.Wrap(errcode.Storage, "store", err)
}

// Recall reads slot. A slot that was never written yields errcode.EmptySlot.
func (s *Store) Recall(slot int) (types.Configuration, error) {
	if err := checkSlot("recall", slot); err != nil {
		return types.Configuration{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.dev.ReadAt(s.buf[:], int64(slot)*RecordSize)
	if n == RecordSize {
		err = nil
	} else if err == nil {
		err = io.ErrUnexpectedEOF
	}
	if err == io.EOF && n == 0 {
		// Backing file shorter than the table: slot never written.
		return types.Configuration{}, errcode.EmptySlot
	}
	if err != nil {
		return types.Configuration{}, errcode.Wrap(errcode.Storage, "recall", err)
	}
	return decodeRecord(&s.buf)
}
