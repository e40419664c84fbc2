package core

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Display adapts an LEDMatrix to drivers.Displayer so tinydraw and tinyfont
// can render on it. Drawing goes to a back buffer; Display pushes it to the
// matrix in one SetImage. x is the column and y the row, both 0-based.
type Display struct {
	matrix *LEDMatrix
	back   [MatrixCells]uint8
}

var _ drivers.Displayer = (*Display)(nil)

// NewDisplay returns a Display drawing onto m.
func NewDisplay(m *LEDMatrix) *Display {
	return &Display{matrix: m, back: m.Image()}
}

// Size returns the matrix size in pixels.
func (d *Display) Size() (x, y int16) {
	return MatrixCols, MatrixRows
}

// SetPixel lights (x, y) for any colour other than black. Off-grid pixels
// are dropped.
func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= MatrixCols || y < 0 || y >= MatrixRows {
		return
	}
	var v uint8
	if c.R != 0 || c.G != 0 || c.B != 0 {
		v = 1
	}
	d.back[int(y)*MatrixCols+int(x)] = v
}

// Display copies the back buffer to the matrix.
func (d *Display) Display() error {
	d.matrix.SetImage(d.back)
	return nil
}

// ClearBuffer blanks the back buffer without touching the matrix.
func (d *Display) ClearBuffer() {
	d.back = [MatrixCells]uint8{}
}
