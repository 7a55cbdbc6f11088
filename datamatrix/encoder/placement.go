// Copyright 2006 Jeremias Maerki in part, and ZXing Authors in part.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Ported from Java ZXing library.

package encoder

import "github.com/gosymbol/decoder/datamatrix/placement"

// DefaultPlacement implements the ECC-200 module placement algorithm
// as defined in ISO/IEC 16022, Annex F (and Annex M for the special
// corner cases). It assigns each codeword bit to a position in the
// mapping matrix.
//
// The mapping matrix is the symbol matrix with finder/timing patterns
// stripped away; it contains only data modules.
type DefaultPlacement struct {
	codewords []byte
	numRows   int
	numCols   int
	bits      []int8 // -1 = unvisited, 0 = off, 1 = on
}

// NewDefaultPlacement creates a placement object for the given codewords
// and mapping matrix dimensions (rows and columns of the data area only,
// excluding finder patterns).
func NewDefaultPlacement(codewords []byte, numCols, numRows int) *DefaultPlacement {
	p := &DefaultPlacement{
		codewords: codewords,
		numRows:   numRows,
		numCols:   numCols,
		bits:      make([]int8, numRows*numCols),
	}
	for i := range p.bits {
		p.bits[i] = -1 // mark all as unvisited
	}
	return p
}

// NumRows returns the number of rows.
func (p *DefaultPlacement) NumRows() int { return p.numRows }

// NumCols returns the number of columns.
func (p *DefaultPlacement) NumCols() int { return p.numCols }

// GetBit returns the bit value at (col, row). Returns false if unset.
func (p *DefaultPlacement) GetBit(col, row int) bool {
	return p.bits[row*p.numCols+col] == 1
}

// setBit sets the bit at (col, row).
func (p *DefaultPlacement) setBit(col, row int, bit bool) {
	if bit {
		p.bits[row*p.numCols+col] = 1
	} else {
		p.bits[row*p.numCols+col] = 0
	}
}

// hasBit returns true if the position has been visited.
func (p *DefaultPlacement) hasBit(col, row int) bool {
	return p.bits[row*p.numCols+col] >= 0
}

// VisitModule implements placement.Visitor, writing the codeword bit at
// bitIndex of the codeword at codewordIndex into (row, col).
func (p *DefaultPlacement) VisitModule(codewordIndex, bitIndex, row, col int) {
	v := false
	if codewordIndex < len(p.codewords) {
		v = (p.codewords[codewordIndex] & (1 << uint(7-bitIndex))) != 0
	}
	p.setBit(col, row, v)
}

// Place runs the placement algorithm, filling the mapping matrix
// with codeword bits.
func (p *DefaultPlacement) Place() {
	placement.Walk(p.numRows, p.numCols, p)

	// If the bottom-right corner was never visited, set it and the module
	// diagonally above-left of it to 1 (the fixed pattern of the unused
	// corner); the other two modules of that corner stay off.
	if !p.hasBit(p.numCols-1, p.numRows-1) {
		p.setBit(p.numCols-1, p.numRows-1, true)
		p.setBit(p.numCols-2, p.numRows-2, true)
	}
}
