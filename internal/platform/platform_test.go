//go:build !tinygo

package platform

import (
	"bytes"
	"errors"
	"testing"

	"ddsgen-go/drivers/ad9833"
	"ddsgen-go/errcode"
	"ddsgen-go/services/config"
)

func TestSerialWriter_BigEndianPairs(t *testing.T) {
	var buf bytes.Buffer
	d := ad9833.New(NewSerialWriter(&buf), ad9833.DefaultConfig())
	if err := d.WriteFrequency(60000); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x54, 0x95, 0x40, 0x27}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("bytes = % x, want % x", buf.Bytes(), want)
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return 1, nil }

func TestSerialWriter_ShortWrite(t *testing.T) {
	if err := NewSerialWriter(shortWriter{}).WriteWord(0x2100); err == nil {
		t.Fatal("short write not reported")
	}
}

type fakeConn struct {
	tx  [][]byte
	err error
}

func (f *fakeConn) Tx(w, r []byte) error {
	f.tx = append(f.tx, append([]byte(nil), w...))
	for i := range r {
		r[i] = 0xA5
	}
	return f.err
}

func TestBusSPI(t *testing.T) {
	fc := &fakeConn{}
	w := ad9833.NewSPIWriter(&busSPI{c: fc}, nil)
	if err := w.WriteWord(0xC800); err != nil {
		t.Fatal(err)
	}
	if len(fc.tx) != 1 || !bytes.Equal(fc.tx[0], []byte{0xC8, 0x00}) {
		t.Fatalf("tx = %x", fc.tx)
	}
	b := &busSPI{c: fc}
	if v, err := b.Transfer(0x01); err != nil || v != 0xA5 {
		t.Fatalf("Transfer = %#x, %v", v, err)
	}
	fc.err = errors.New("bus fault")
	if err := w.WriteWord(0); !errors.Is(err, fc.err) {
		t.Fatalf("error = %v", err)
	}
}

func TestOpenTransport(t *testing.T) {
	l, rec, err := OpenTransport(config.Transport{Kind: "recorder"})
	if err != nil || rec == nil {
		t.Fatalf("recorder: %v", err)
	}
	if err := l.WriteWord(0x2100); err != nil || len(rec.Words) != 1 {
		t.Fatalf("recorder write: %v %v", err, rec.Words)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := OpenTransport(config.Transport{Kind: "can"}); errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("unknown kind: %v", err)
	}
	if _, _, err := OpenTransport(config.Transport{Kind: "serial", Device: "/nonexistent/tty"}); errcode.Of(err) != errcode.Transport {
		t.Fatalf("missing port: %v", err)
	}
}
