//go:build !tinygo

package platform

import (
	"ddsgen-go/drivers/ad9833"
	"ddsgen-go/errcode"
	"ddsgen-go/services/config"
)

// OpenTransport builds the DDS link named by t. "recorder" keeps words in
// memory; rec is returned for inspection in that case.
func OpenTransport(t config.Transport) (Link, *ad9833.Recorder, error) {
	switch t.Kind {
	case "recorder", "":
		rec := &ad9833.Recorder{}
		return Link{WordWriter: rec, Closer: nopCloser{}}, rec, nil
	case "serial":
		l, err := OpenSerial(t.Device, t.Baud)
		return l, nil, err
	case "spidev":
		l, err := OpenSPIDev(t.Device, t.SPIHz)
		return l, nil, err
	}
	return Link{}, nil, &errcode.E{C: errcode.Unsupported, Op: "open_transport", Msg: t.Kind}
}
