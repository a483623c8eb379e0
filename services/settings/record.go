package settings

import (
	"encoding/binary"

	"ddsgen-go/errcode"
	"ddsgen-go/types"
)

// Record layout, little-endian, fixed size:
//
//	0  magic   u16  0x5344
//	2  version u8
//	3  mode    u8
//	4  freq    u32
//	8  f1      u32
//	12 f2      u32
//	16 dur_ms  u32
//	20 rate    i32
//	24 reserved (zero)
//	30 crc16   u16 over bytes 0..29
const (
	RecordSize    = 32
	recordMagic   = 0x5344
	recordVersion = 1
	crcOffset     = RecordSize - 2
)

func encodeRecord(buf *[RecordSize]byte, cfg types.Configuration) {
	*buf = [RecordSize]byte{}
	le := binary.LittleEndian
	le.PutUint16(buf[0:], recordMagic)
	buf[2] = recordVersion
	buf[3] = byte(cfg.Mode)
	le.PutUint32(buf[4:], cfg.FrequencyHz)
	le.PutUint32(buf[8:], cfg.SweepF1Hz)
	le.PutUint32(buf[12:], cfg.SweepF2Hz)
	le.PutUint32(buf[16:], cfg.SweepDurationMs)
	le.PutUint32(buf[20:], uint32(cfg.RateMilliHzMs))
	le.PutUint16(buf[crcOffset:], crc16(buf[:crcOffset]))
}

func decodeRecord(buf *[RecordSize]byte) (types.Configuration, error) {
	le := binary.LittleEndian
	if le.Uint16(buf[0:]) != recordMagic {
		return types.Configuration{}, errcode.EmptySlot
	}
	if buf[2] != recordVersion {
		return types.Configuration{}, &errcode.E{C: errcode.Corrupt, Msg: "unknown record version"}
	}
	if le.Uint16(buf[crcOffset:]) != crc16(buf[:crcOffset]) {
		return types.Configuration{}, &errcode.E{C: errcode.Corrupt, Msg: "crc mismatch"}
	}
	cfg := types.Configuration{
		Mode:            types.Mode(buf[3]),
		FrequencyHz:     le.Uint32(buf[4:]),
		SweepF1Hz:       le.Uint32(buf[8:]),
		SweepF2Hz:       le.Uint32(buf[12:]),
		SweepDurationMs: le.Uint32(buf[16:]),
		RateMilliHzMs:   int32(le.Uint32(buf[20:])),
	}
	if !cfg.Mode.Valid() {
		return types.Configuration{}, &errcode.E{C: errcode.Corrupt, Msg: "invalid mode"}
	}
	return cfg, nil
}

// crc16 is the CRC-16/MCRF4XX checksum also used for serial framing.
func crc16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b ^= uint8(crc & 0xFF)
		b ^= b << 4
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}
