package panel

// Character geometry of the front-panel display.
const (
	Cols = 16
	Rows = 2
)

// TextDisplay is an in-memory character display. Text past the last column
// is cut; rows outside the display are ignored.
type TextDisplay struct {
	cells [Rows][Cols]byte
}

func NewTextDisplay() *TextDisplay {
	d := &TextDisplay{}
	d.Clear()
	return d
}

func (d *TextDisplay) Clear() {
	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
}

// TextAt implements Display.
func (d *TextDisplay) TextAt(col, row uint8, text string) {
	if int(row) >= Rows {
		return
	}
	for i := 0; i < len(text) && int(col)+i < Cols; i++ {
		d.cells[row][int(col)+i] = text[i]
	}
}

// Line returns row r as a string.
func (d *TextDisplay) Line(r int) string {
	if r < 0 || r >= Rows {
		return ""
	}
	return string(d.cells[r][:])
}
