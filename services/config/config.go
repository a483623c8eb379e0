// Package config resolves the generator configuration: embedded per-board
// defaults, optionally overridden from a YAML file on host builds, and
// published on the bus as retained config/<section> messages.
package config

import (
	"context"
	"errors"
	"strconv"

	"ddsgen-go/bus"
	"ddsgen-go/drivers/ad9833"
	"ddsgen-go/services/siggen"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// Transport selects how DDS words reach the chip.
type Transport struct {
	Kind   string `yaml:"kind"`   // "spi" (board), "serial", "spidev", "recorder"
	Device string `yaml:"device"` // serial port or spidev path
	Baud   int    `yaml:"baud"`
	SPIHz  int    `yaml:"spi_hz"`
}

// Config is the complete generator setup.
type Config struct {
	Device        string    `yaml:"device"`
	MasterClockHz uint32    `yaml:"master_clock_hz"`
	MaxOutputHz   uint32    `yaml:"max_output_hz"`
	DefaultHz     uint32    `yaml:"default_hz"`
	WarnMs        uint32    `yaml:"warn_ms"`
	HeartbeatLogS uint32    `yaml:"heartbeat_log_s"`
	StoragePath   string    `yaml:"storage_path"`
	Transport     Transport `yaml:"transport"`
	KeyMap        []string  `yaml:"keymap"` // 16 names, empty for the default legend
}

// EmbeddedConfigLookup allows overriding how board defaults are resolved.
var EmbeddedConfigLookup = func(device string) (Config, bool) {
	c, ok := embeddedConfigs[device]
	return c, ok
}

// Lookup returns the embedded defaults for device.
func Lookup(device string) (*Config, error) {
	c, ok := EmbeddedConfigLookup(device)
	if !ok {
		return nil, errors.New("no embedded config for device: " + device)
	}
	c.KeyMap = append([]string(nil), c.KeyMap...)
	return &c, nil
}

// Validate checks the fields the rest of the system divides by or indexes
// with. It does not modify cfg.
func Validate(cfg *Config) error {
	dds := cfg.DDS()
	if err := dds.Validate(); err != nil {
		return err
	}
	if cfg.DefaultHz >= cfg.MaxOutputHz {
		return errors.New("default_hz " + strconv.FormatUint(uint64(cfg.DefaultHz), 10) + " must be below max_output_hz")
	}
	if _, err := cfg.ScanMap(); err != nil {
		return err
	}
	switch cfg.Transport.Kind {
	case "spi", "recorder":
	case "serial", "spidev":
		if cfg.Transport.Device == "" {
			return errors.New("transport " + cfg.Transport.Kind + " needs a device")
		}
	default:
		return errors.New("unknown transport kind " + strconv.Quote(cfg.Transport.Kind))
	}
	return nil
}

// DDS returns the chip configuration.
func (c *Config) DDS() ad9833.Config {
	return ad9833.Config{MasterClockHz: c.MasterClockHz, MaxOutputHz: c.MaxOutputHz}
}

// Limits returns the operator input bounds.
func (c *Config) Limits() siggen.Limits {
	l := siggen.DefaultLimits()
	l.MaxHz = c.MaxOutputHz
	return l
}

// ScanMap resolves KeyMap.
func (c *Config) ScanMap() (siggen.ScanMap, error) {
	if len(c.KeyMap) == 0 {
		return siggen.DefaultScanMap, nil
	}
	var names [16]string
	if len(c.KeyMap) != len(names) {
		return siggen.ScanMap{}, errors.New("keymap needs 16 entries, got " + strconv.Itoa(len(c.KeyMap)))
	}
	copy(names[:], c.KeyMap)
	return siggen.ParseKeyMap(names)
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
	Cfg  *Config // nil resolves the device named in the context
}

func NewConfigService(cfg *Config) *ConfigService {
	return &ConfigService{Name: serviceName, Cfg: cfg}
}

// publishConfig publishes each section as a retained message.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	cfg := s.Cfg
	if cfg == nil {
		device, _ := ctx.Value(CtxDeviceKey).(string)
		if device == "" {
			return errors.New("missing device ID in context")
		}
		c, err := Lookup(device)
		if err != nil {
			return err
		}
		cfg = c
	}
	sections := map[string]any{
		"siggen": map[string]any{
			"master_clock_hz": float64(cfg.MasterClockHz),
			"max_output_hz":   float64(cfg.MaxOutputHz),
			"default_hz":      float64(cfg.DefaultHz),
			"warn_ms":         float64(cfg.WarnMs),
		},
		"heartbeat": map[string]any{
			"log_every_s": float64(cfg.HeartbeatLogS),
		},
		"transport": map[string]any{
			"kind":   cfg.Transport.Kind,
			"device": cfg.Transport.Device,
		},
	}
	for k, v := range sections {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config]", err.Error())
		}
	}()
}
