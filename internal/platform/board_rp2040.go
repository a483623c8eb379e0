//go:build rp2040

package platform

import (
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/encoders"
	"tinygo.org/x/drivers/hd44780i2c"
	"tinygo.org/x/drivers/keypad4x4"

	"ddsgen-go/drivers/ad9833"
	"ddsgen-go/services/panel"
	"ddsgen-go/services/settings"
	"ddsgen-go/x/critical"
)

// Pico front-panel wiring.
const (
	pinSCK   = machine.GPIO18
	pinSDO   = machine.GPIO19
	pinFSYNC = machine.GPIO17

	pinEncA   = machine.GPIO2
	pinEncB   = machine.GPIO3
	pinButton = machine.GPIO4

	pinRow1, pinRow2, pinRow3, pinRow4 = machine.GPIO6, machine.GPIO7, machine.GPIO8, machine.GPIO9
	pinCol1, pinCol2, pinCol3, pinCol4 = machine.GPIO10, machine.GPIO11, machine.GPIO12, machine.GPIO13

	pinSDA = machine.GPIO20
	pinSCL = machine.GPIO21

	pinConsoleTX = machine.GPIO0
	pinConsoleRX = machine.GPIO1

	lcdAddr          = 0x27
	keyScanPeriod    = 10 * time.Millisecond
	buttonDebounceMs = 20
)

// Board is the assembled front panel.
type Board struct {
	DDS     ad9833.WordWriter
	Encoder *QuadEncoder
	Button  *panel.Edge
	Keys    *panel.KeyQueue
	Display panel.Display
	Storage settings.Storage
	Clock   *panel.MillisClock

	keypad keypad4x4.Device
}

// NewBoard configures every peripheral. spiHz 0 selects 4 MHz.
func NewBoard(spiHz uint32) (*Board, error) {
	if spiHz == 0 {
		spiHz = 4_000_000
	}
	b := &Board{Clock: &panel.MillisClock{}}

	// DDS on SPI0, mode 2, FSYNC as a plain GPIO.
	if err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: spiHz,
		SCK:       pinSCK,
		SDO:       pinSDO,
		Mode:      2,
	}); err != nil {
		return nil, err
	}
	pinFSYNC.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b.DDS = ad9833.NewSPIWriter(machine.SPI0, pinFSYNC.Set)

	// Encoder counts in interrupt context.
	q := encoders.NewQuadratureViaInterrupt(pinEncA, pinEncB)
	if err := q.Configure(encoders.QuadratureConfig{Precision: 4}); err != nil {
		return nil, err
	}
	b.Encoder = &QuadEncoder{q: q}

	pinButton.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	b.Button = &panel.Edge{Level: pinButton.Get, Clock: b.Clock, DebounceMs: buttonDebounceMs, Invert: true}

	b.keypad = keypad4x4.NewDevice(pinRow4, pinRow3, pinRow2, pinRow1, pinCol4, pinCol3, pinCol2, pinCol1)
	b.keypad.Configure()
	b.Keys = panel.NewKeyQueue(16)

	// Character LCD; fall back to the console alone if it is absent.
	console := uartx.UART0
	_ = console.Configure(uartx.UARTConfig{BaudRate: 115200, TX: pinConsoleTX, RX: pinConsoleRX})
	disp := &consoleDisplay{w: console}
	if err := machine.I2C0.Configure(machine.I2CConfig{SDA: pinSDA, SCL: pinSCL, Frequency: 100_000}); err == nil {
		lcd := hd44780i2c.New(machine.I2C0, lcdAddr)
		if err := lcd.Configure(hd44780i2c.Config{Width: panel.Cols, Height: panel.Rows}); err == nil {
			disp.lcd = &lcd
		} else {
			println("[board] lcd:", err.Error())
		}
	}
	b.Display = disp

	// Settings table in the last erase block of the data flash.
	ebs := machine.Flash.EraseBlockSize()
	b.Storage = settings.NewFlashStorage(machine.Flash, machine.Flash.Size()-ebs)
	return b, nil
}

// StartTimers runs the millisecond clock and the keypad scanner.
func (b *Board) StartTimers() {
	go func() {
		t := time.NewTicker(time.Millisecond)
		for range t.C {
			b.Clock.Tick()
		}
	}()
	go func() {
		last := uint8(keypad4x4.NoKeyPressed)
		for {
			k := b.keypad.GetKey()
			if k != last && k != keypad4x4.NoKeyPressed {
				b.Keys.Push(k)
			}
			last = k
			time.Sleep(keyScanPeriod)
		}
	}()
}

// QuadEncoder exposes the interrupt-driven quadrature position as a
// panel.Encoder.
type QuadEncoder struct {
	q *encoders.QuadratureDevice
}

func (e *QuadEncoder) Count() (n int32) {
	critical.Section(func() { n = int32(e.q.Position()) })
	return n
}

func (e *QuadEncoder) SetCount(n int32) {
	critical.Section(func() { e.q.SetPosition(int(n)) })
}

// consoleDisplay draws on the LCD (when present) and mirrors each row to
// the console UART.
type consoleDisplay struct {
	lcd *hd44780i2c.Device
	w   *uartx.UART
	buf [panel.Cols + 4]byte
}

func (d *consoleDisplay) TextAt(col, row uint8, text string) {
	if d.lcd != nil {
		d.lcd.SetCursor(col, row)
		d.lcd.Print([]byte(text))
	}
	n := copy(d.buf[:], "[")
	d.buf[n] = '0' + row
	n++
	n += copy(d.buf[n:], "] ")
	n += copy(d.buf[n:], text)
	_, _ = d.w.Write(d.buf[:n])
	_, _ = d.w.Write([]byte("\r\n"))
}
