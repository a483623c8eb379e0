//go:build !tinygo

package platform

import (
	"io"

	"github.com/tarm/serial"

	"ddsgen-go/errcode"
)

// SerialWriter sends DDS words to a USB-serial SPI bridge: two bytes per
// word, high byte first. The bridge clocks each pair out under FSYNC.
type SerialWriter struct {
	w   io.Writer
	buf [2]byte
}

func NewSerialWriter(w io.Writer) *SerialWriter { return &SerialWriter{w: w} }

func (s *SerialWriter) WriteWord(v uint16) error {
	s.buf[0] = byte(v >> 8)
	s.buf[1] = byte(v)
	n, err := s.w.Write(s.buf[:])
	if err == nil && n != len(s.buf) {
		err = io.ErrShortWrite
	}
	return err
}

// OpenSerial opens the bridge on device at baud.
func OpenSerial(device string, baud int) (Link, error) {
	if baud <= 0 {
		baud = 115200
	}
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return Link{}, &errcode.E{C: errcode.Transport, Op: "open_serial", Msg: device, Err: err}
	}
	return Link{WordWriter: NewSerialWriter(port), Closer: port}, nil
}
