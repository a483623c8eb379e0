package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// -----------------------------------------------------------------------------

var embeddedConfigs = map[string]Config{
	// Pico front panel: AD9833 on SPI0, settings in the last flash sectors.
	"pico": {
		Device:        "pico",
		MasterClockHz: 25_000_000,
		MaxOutputHz:   12_000_000,
		DefaultHz:     60_000,
		WarnMs:        1500,
		HeartbeatLogS: 10,
		Transport:     Transport{Kind: "spi", SPIHz: 4_000_000},
	},
	// Host simulator with an in-memory DDS.
	"sim": {
		Device:        "sim",
		MasterClockHz: 25_000_000,
		MaxOutputHz:   12_000_000,
		DefaultHz:     60_000,
		WarnMs:        1500,
		StoragePath:   "siggen-slots.bin",
		Transport:     Transport{Kind: "recorder"},
	},
}
