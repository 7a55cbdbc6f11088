// Package placement implements the ECC-200 module placement algorithm
// (ISO/IEC 16022, Annex F and Annex M) shared by the Data Matrix decoder
// and encoder. The decoder samples modules from a scanned image into
// codewords; the encoder writes codeword bits into modules destined for a
// rendered symbol. Both walk the exact same diagonal sweep and corner
// cases over the mapping matrix, so the walk itself lives here once and
// each side supplies only what it does with a given module.
package placement

// Visitor receives one call per module visited during the placement walk.
// codewordIndex is the position of the codeword being placed (0-based, in
// placement order); bitIndex is that codeword's bit position, 0 for the
// MSB through 7 for the LSB. row and col are the resolved coordinates of
// the module within the mapping matrix (wraparound already applied).
type Visitor interface {
	VisitModule(codewordIndex, bitIndex, row, col int)
}

// utahOffsets gives the 8 module offsets of a standard Utah-shaped
// codeword, relative to the shape's lower-right anchor, in bit order.
var utahOffsets = [8][2]int{
	{-2, -2}, {-2, -1}, {-1, -2}, {-1, -1}, {-1, 0}, {0, -2}, {0, -1}, {0, 0},
}

func corner1Offsets(numRows, numCols int) [8][2]int {
	return [8][2]int{
		{numRows - 1, 0}, {numRows - 1, 1}, {numRows - 1, 2},
		{0, numCols - 2}, {0, numCols - 1},
		{1, numCols - 1}, {2, numCols - 1}, {3, numCols - 1},
	}
}

func corner2Offsets(numRows, numCols int) [8][2]int {
	return [8][2]int{
		{numRows - 3, 0}, {numRows - 2, 0}, {numRows - 1, 0},
		{0, numCols - 4}, {0, numCols - 3}, {0, numCols - 2}, {0, numCols - 1},
		{1, numCols - 1},
	}
}

func corner3Offsets(numRows, numCols int) [8][2]int {
	return [8][2]int{
		{numRows - 1, 0}, {numRows - 1, numCols - 1},
		{0, numCols - 3}, {0, numCols - 2}, {0, numCols - 1},
		{1, numCols - 3}, {1, numCols - 2}, {1, numCols - 1},
	}
}

func corner4Offsets(numRows, numCols int) [8][2]int {
	return [8][2]int{
		{numRows - 3, 0}, {numRows - 2, 0}, {numRows - 1, 0},
		{0, numCols - 2}, {0, numCols - 1},
		{1, numCols - 1}, {2, numCols - 1}, {3, numCols - 1},
	}
}

// ResolveModule normalizes a module position that may fall outside the
// mapping matrix into its wrapped-around position per ISO/IEC 16022
// Annex F.
func ResolveModule(row, col, numRows, numCols int) (int, int) {
	if row < 0 {
		row += numRows
		col += 4 - ((numRows + 4) % 8)
	}
	if col < 0 {
		col += numCols
		row += 4 - ((numCols + 4) % 8)
	}
	if row >= numRows {
		row -= numRows
	}
	if col >= numCols {
		col -= numCols
	}
	return row, col
}

// Walk runs the ECC-200 diagonal sweep and corner-case placement over a
// numRows x numCols mapping matrix (finder and alignment patterns already
// stripped), calling v once per module for every bit of every codeword
// position, in placement order.
func Walk(numRows, numCols int, v Visitor) {
	visited := make([][]bool, numRows)
	for i := range visited {
		visited[i] = make([]bool, numCols)
	}

	pos := 0
	row := 4
	col := 0

	visit := func(offsets [8][2]int, resolve bool) {
		for bit, off := range offsets {
			r, c := off[0], off[1]
			if resolve {
				r, c = ResolveModule(row+off[0], col+off[1], numRows, numCols)
			}
			visited[r][c] = true
			v.VisitModule(pos, bit, r, c)
		}
		pos++
	}

	for {
		if row == numRows && col == 0 {
			visit(corner1Offsets(numRows, numCols), false)
		}
		if row == numRows-2 && col == 0 && numCols%4 != 0 {
			visit(corner2Offsets(numRows, numCols), false)
		}
		if row == numRows+4 && col == 2 && numCols%8 == 0 {
			visit(corner3Offsets(numRows, numCols), false)
		}
		if row == numRows-2 && col == 0 && numCols%8 == 4 {
			visit(corner4Offsets(numRows, numCols), false)
		}

		// Sweep upward-right (do-while: body runs first, bounds checked after step).
		for {
			if row >= 0 && row < numRows && col >= 0 && col < numCols && !visited[row][col] {
				visit(utahOffsets, true)
			}
			row -= 2
			col += 2
			if !(row >= 0 && col < numCols) {
				break
			}
		}
		row++
		col += 3

		// Sweep downward-left (do-while: body runs first, bounds checked after step).
		for {
			if row >= 0 && row < numRows && col >= 0 && col < numCols && !visited[row][col] {
				visit(utahOffsets, true)
			}
			row += 2
			col -= 2
			if !(row < numRows && col >= 0) {
				break
			}
		}
		row += 3
		col++

		if row >= numRows && col >= numCols {
			break
		}
	}
}
