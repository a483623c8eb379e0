//go:build !linux && !tinygo

package platform

import "ddsgen-go/errcode"

func OpenSPIDev(name string, hz int) (Link, error) {
	return Link{}, &errcode.E{C: errcode.Unsupported, Op: "open_spidev", Msg: "spidev needs linux"}
}
