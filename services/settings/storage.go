package settings

import (
	"io"
)

// Storage is the non-volatile medium behind the slots. *os.File satisfies it.
type Storage interface {
	io.ReaderAt
	io.WriterAt
}

// ---- RAM-backed storage ----

// MemStorage is a fixed-size byte array that reads back 0xFF when blank,
// like erased flash.
type MemStorage struct {
	buf []byte
}

func NewMemStorage(size int) *MemStorage {
	m := &MemStorage{buf: make([]byte, size)}
	for i := range m.buf {
		m.buf[i] = 0xFF
	}
	return m
}

func (m *MemStorage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MemStorage) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.buf)) {
		return 0, io.ErrShortWrite
	}
	return copy(m.buf[off:], p), nil
}

// Bytes exposes the backing array (tests, simulator dumps).
func (m *MemStorage) Bytes() []byte { return m.buf }

// ---- Erase-before-write flash ----

// BlockDevice is the subset of TinyGo's machine.Flash used here.
type BlockDevice interface {
	io.ReaderAt
	io.WriterAt
	EraseBlockSize() int64
	EraseBlocks(start, length int64) error
}

// FlashStorage maps byte writes onto an erase-before-write device with
// read-modify-erase-write of every erase block a write touches. Offsets are
// relative to Base, which must be erase-block aligned.
type FlashStorage struct {
	dev  BlockDevice
	Base int64

	block []byte
}

func NewFlashStorage(dev BlockDevice, base int64) *FlashStorage {
	return &FlashStorage{dev: dev, Base: base}
}

func (f *FlashStorage) ReadAt(p []byte, off int64) (int, error) {
	return f.dev.ReadAt(p, f.Base+off)
}

func (f *FlashStorage) WriteAt(p []byte, off int64) (int, error) {
	ebs := f.dev.EraseBlockSize()
	if ebs <= 0 {
		return 0, io.ErrShortWrite
	}
	if int64(len(f.block)) != ebs {
		f.block = make([]byte, ebs)
	}
	written := 0
	for written < len(p) {
		abs := f.Base + off + int64(written)
		blk := abs / ebs
		start := blk * ebs
		if _, err := f.dev.ReadAt(f.block, start); err != nil && err != io.EOF {
			return written, err
		}
		n := copy(f.block[abs-start:], p[written:])
		if err := f.dev.EraseBlocks(blk, 1); err != nil {
			return written, err
		}
		if _, err := f.dev.WriteAt(f.block, start); err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}
