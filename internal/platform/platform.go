// Package platform binds the generator to concrete hardware: the Pico
// front-panel board on TinyGo builds, and serial or spidev links to an
// AD9833 from a host.
package platform

import (
	"io"

	"ddsgen-go/drivers/ad9833"
)

// Link is a DDS word transport that may hold an OS resource.
type Link struct {
	ad9833.WordWriter
	io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// spiConn is the transmit half shared by periph and TinyGo SPI buses.
type spiConn interface {
	Tx(w, r []byte) error
}

// busSPI adapts a Tx-only bus to drivers.SPI.
type busSPI struct {
	c   spiConn
	one [1]byte
}

func (b *busSPI) Tx(w, r []byte) error { return b.c.Tx(w, r) }

func (b *busSPI) Transfer(v byte) (byte, error) {
	b.one[0] = v
	var in [1]byte
	err := b.c.Tx(b.one[:], in[:])
	return in[0], err
}
