package core

import "yakio/nrf51"

// Matrix geometry. The 5x5 grid is wired as 3 row lines by 9 column lines.
const (
	MatrixRows      = 5
	MatrixCols      = 5
	MatrixCells     = MatrixRows * MatrixCols
	MatrixRowGroups = 3

	// PixelInvalid is returned by GetPixel for coordinates off the grid.
	PixelInvalid = -1
)

// GPIO lines of the matrix. Rows are P0.13..P0.15, columns P0.4..P0.12.
const (
	LEDRow1 = 1 << 13
	LEDRow2 = 1 << 14
	LEDRow3 = 1 << 15

	LEDRows = LEDRow1 | LEDRow2 | LEDRow3
	LEDCols = 0x1FF0
	LEDMask = 0xFFF0
)

// ledCell places one image cell on a column line of a row group.
type ledCell struct {
	cell  uint8
	shift uint8
}

// ledGroup is one multiplexed row group. base drives its row line high and
// every column line high (LED off); cells XOR their column bit low.
type ledGroup struct {
	base  uint32
	cells []ledCell
}

// ledWiring is the physical matrix wiring of the micro:bit V1.
var ledWiring = [MatrixRowGroups]ledGroup{
	{base: 0x3FF0, cells: []ledCell{
		{0, 4}, {2, 5}, {4, 6}, {19, 7}, {18, 8}, {17, 9}, {16, 10}, {15, 11}, {11, 12},
	}},
	{base: 0x5FF0, cells: []ledCell{
		{14, 4}, {10, 5}, {12, 6}, {1, 7}, {3, 8}, {23, 9}, {21, 10},
	}},
	{base: 0x9FF0, cells: []ledCell{
		{22, 4}, {24, 5}, {20, 6}, {5, 7}, {6, 8}, {7, 9}, {8, 10}, {9, 11}, {13, 12},
	}},
}

// LEDMatrix multiplexes a 5x5 binary image onto the matrix. Refresh must be
// called every 1 to 10 ms (normally from the heartbeat); each call lights
// one row group, so three calls make a frame.
//
// Rows and columns are 1-based. Every mutation recompiles the three row
// words before returning.
type LEDMatrix struct {
	image [MatrixCells]uint8
	words [MatrixRowGroups]uint32
	row   uint8
}

// Configure makes the row and column lines outputs and blanks the display.
func (m *LEDMatrix) Configure() {
	MustBus().Store(nrf51.GPIO+nrf51.GPIO_DIRSET, LEDRows|LEDCols)
	m.ClearImage()
}

// ClearImage blanks the image and pushes all three row groups out at once,
// so the display goes dark even before a refresher runs.
func (m *LEDMatrix) ClearImage() {
	m.image = [MatrixCells]uint8{}
	m.compile()
	for i := 0; i < MatrixRowGroups; i++ {
		m.Refresh()
	}
}

// Refresh drives the next row group. The matrix lines are cleared before
// the group's bits are set.
func (m *LEDMatrix) Refresh() {
	b := MustBus()
	b.Store(nrf51.GPIO+nrf51.GPIO_OUTCLR, LEDMask)
	b.Store(nrf51.GPIO+nrf51.GPIO_OUTSET, m.words[m.row])
	m.row = (m.row + 1) % MatrixRowGroups
}

func cellIndex(row, col int) (int, bool) {
	if row < 1 || row > MatrixRows || col < 1 || col > MatrixCols {
		return 0, false
	}
	return (row-1)*MatrixCols + (col - 1), true
}

// SetPixel sets cell (row, col) to value, which must be 0 or 1.
func (m *LEDMatrix) SetPixel(row, col int, value uint8) {
	i, ok := cellIndex(row, col)
	if !ok || value > 1 {
		return
	}
	m.image[i] = value
	m.compile()
}

// TogglePixel flips cell (row, col).
func (m *LEDMatrix) TogglePixel(row, col int) {
	i, ok := cellIndex(row, col)
	if !ok {
		return
	}
	m.image[i] ^= 1
	m.compile()
}

// GetPixel returns cell (row, col), or PixelInvalid off the grid.
func (m *LEDMatrix) GetPixel(row, col int) int {
	i, ok := cellIndex(row, col)
	if !ok {
		return PixelInvalid
	}
	return int(m.image[i])
}

// SetImage replaces the whole image, row-major. Non-zero cells light.
func (m *LEDMatrix) SetImage(img [MatrixCells]uint8) {
	for i, v := range img {
		m.image[i] = bit(v)
	}
	m.compile()
}

// SetImageBits loads a 25-bit bitmap; bit 24 is (1,1) and bit 0 is (5,5).
func (m *LEDMatrix) SetImageBits(bits uint32) {
	for i := 0; i < MatrixCells; i++ {
		m.image[i] = uint8(bits>>uint(MatrixCells-1-i)) & 1
	}
	m.compile()
}

// ImageBits returns the image in the SetImageBits layout.
func (m *LEDMatrix) ImageBits() uint32 {
	var bits uint32
	for i := 0; i < MatrixCells; i++ {
		bits = bits<<1 | uint32(m.image[i])
	}
	return bits
}

// SetColumn replaces the five cells of column col, top to bottom.
func (m *LEDMatrix) SetColumn(col int, values [MatrixRows]uint8) {
	if col < 1 || col > MatrixCols {
		return
	}
	for r, v := range values {
		m.image[r*MatrixCols+(col-1)] = bit(v)
	}
	m.compile()
}

// SetRow replaces the five cells of row row, left to right.
func (m *LEDMatrix) SetRow(row int, values [MatrixCols]uint8) {
	if row < 1 || row > MatrixRows {
		return
	}
	for c, v := range values {
		m.image[(row-1)*MatrixCols+c] = bit(v)
	}
	m.compile()
}

// Image returns a copy of the image.
func (m *LEDMatrix) Image() [MatrixCells]uint8 {
	return m.image
}

// Words returns the compiled row-group words.
func (m *LEDMatrix) Words() [MatrixRowGroups]uint32 {
	return m.words
}

// Row returns the row group the next Refresh will drive.
func (m *LEDMatrix) Row() int {
	return int(m.row)
}

// DumpWords logs the compiled words through the debug writer.
func (m *LEDMatrix) DumpWords() {
	for g, w := range m.words {
		DebugPrintln("[LED] row" + itoa(g+1) + "=" + hex32(w))
	}
}

// compile rebuilds the row words from the image. Each word is assembled
// locally and stored whole so Refresh never reads a partial word.
func (m *LEDMatrix) compile() {
	for g := range ledWiring {
		w := ledWiring[g].base
		for _, c := range ledWiring[g].cells {
			w ^= uint32(m.image[c.cell]) << c.shift
		}
		m.words[g] = w
	}
}

func bit(v uint8) uint8 {
	if v != 0 {
		return 1
	}
	return 0
}
