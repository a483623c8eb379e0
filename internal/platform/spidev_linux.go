//go:build linux && !tinygo

package platform

import (
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"ddsgen-go/drivers/ad9833"
	"ddsgen-go/errcode"
)

// OpenSPIDev opens a Linux spidev port (e.g. "/dev/spidev0.0" or "SPI0.0")
// in mode 2. The kernel drives chip select, which frames each 16-bit word.
func OpenSPIDev(name string, hz int) (Link, error) {
	if _, err := host.Init(); err != nil {
		return Link{}, &errcode.E{C: errcode.Transport, Op: "open_spidev", Msg: "host init", Err: err}
	}
	p, err := spireg.Open(name)
	if err != nil {
		return Link{}, &errcode.E{C: errcode.Transport, Op: "open_spidev", Msg: name, Err: err}
	}
	if hz <= 0 {
		hz = 1_000_000
	}
	c, err := p.Connect(physic.Frequency(hz)*physic.Hertz, spi.Mode2, 8)
	if err != nil {
		p.Close()
		return Link{}, &errcode.E{C: errcode.Transport, Op: "open_spidev", Msg: "connect", Err: err}
	}
	return Link{WordWriter: ad9833.NewSPIWriter(&busSPI{c: c}, nil), Closer: p}, nil
}
