package decoder

import "fmt"

// DataBlock represents a block of data and error-correction codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks separates interleaved Data Matrix codewords into data and EC blocks.
// Data Matrix interleaves codewords across blocks: first all data codewords are
// interleaved, then all EC codewords are interleaved.
func GetDataBlocks(rawCodewords []byte, version *Version) ([]DataBlock, error) {
	return getDataBlocks(rawCodewords, version, false)
}

// GetDataBlocksFix259 re-interleaves raw codewords using the alternate
// layout some 144x144 (version 24) encoders produce: EC codewords for
// blocks at index 8 and beyond are shifted back by one position relative
// to the standard interleaving. The decoder retries with this layout when
// the standard de-interleaving of a 144x144 symbol fails Reed-Solomon
// correction.
func GetDataBlocksFix259(rawCodewords []byte, version *Version) ([]DataBlock, error) {
	return getDataBlocks(rawCodewords, version, true)
}

func getDataBlocks(rawCodewords []byte, version *Version, fix259 bool) ([]DataBlock, error) {
	ecBlocks := version.GetECBlocks()

	// Count total blocks
	totalBlocks := 0
	for _, block := range ecBlocks.Blocks {
		totalBlocks += block.Count
	}

	if totalBlocks == 0 {
		return nil, fmt.Errorf("datamatrix/decoder: no EC blocks defined")
	}

	// EC codewords per block
	ecCodewordsPerBlock := ecBlocks.ECCodewords / totalBlocks

	result := make([]DataBlock, totalBlocks)
	blockIndex := 0
	for _, block := range ecBlocks.Blocks {
		for i := 0; i < block.Count; i++ {
			numDataCodewords := block.DataCodewords
			numBlockCodewords := numDataCodewords + ecCodewordsPerBlock
			result[blockIndex] = DataBlock{
				NumDataCodewords: numDataCodewords,
				Codewords:        make([]byte, numBlockCodewords),
			}
			blockIndex++
		}
	}

	// Data Matrix interleaving: data codewords are interleaved across blocks,
	// then EC codewords are interleaved across blocks.

	// Find the shorter data block size. Unequal block groups aren't
	// necessarily listed shorter-group-first — version 24 (144x144) lists
	// ECB{8,156} before ECB{2,155} — so the longer/shorter split must be
	// found by value, not by assuming index order.
	shorterBlocksNumDataCodewords := result[0].NumDataCodewords
	for j := 1; j < totalBlocks; j++ {
		if result[j].NumDataCodewords < shorterBlocksNumDataCodewords {
			shorterBlocksNumDataCodewords = result[j].NumDataCodewords
		}
	}

	// De-interleave data codewords
	rawCodewordsOffset := 0
	for i := 0; i < shorterBlocksNumDataCodewords; i++ {
		for j := 0; j < totalBlocks; j++ {
			if rawCodewordsOffset >= len(rawCodewords) {
				return nil, fmt.Errorf("datamatrix/decoder: not enough raw codewords")
			}
			result[j].Codewords[i] = rawCodewords[rawCodewordsOffset]
			rawCodewordsOffset++
		}
	}

	// Handle longer blocks (extra data codeword), identified by value rather
	// than position, since the longer group isn't always listed last.
	for j := 0; j < totalBlocks; j++ {
		if result[j].NumDataCodewords <= shorterBlocksNumDataCodewords {
			continue
		}
		if rawCodewordsOffset >= len(rawCodewords) {
			return nil, fmt.Errorf("datamatrix/decoder: not enough raw codewords")
		}
		result[j].Codewords[shorterBlocksNumDataCodewords] = rawCodewords[rawCodewordsOffset]
		rawCodewordsOffset++
	}

	// De-interleave EC codewords. The fix259 layout shifts the EC codeword
	// position back by one, for blocks beyond index 7, to match the
	// alternate interleaving some 144x144 encoders produce.
	for i := 0; i < ecCodewordsPerBlock; i++ {
		for j := 0; j < totalBlocks; j++ {
			ecPos := i
			if fix259 && j >= 8 && i > 0 {
				ecPos = i - 1
			}
			iOffset := result[j].NumDataCodewords + ecPos
			if rawCodewordsOffset >= len(rawCodewords) {
				return nil, fmt.Errorf("datamatrix/decoder: not enough raw codewords")
			}
			result[j].Codewords[iOffset] = rawCodewords[rawCodewordsOffset]
			rawCodewordsOffset++
		}
	}

	if rawCodewordsOffset != len(rawCodewords) {
		return nil, fmt.Errorf("datamatrix/decoder: raw codewords count mismatch: used %d of %d", rawCodewordsOffset, len(rawCodewords))
	}

	return result, nil
}
