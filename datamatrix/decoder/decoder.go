package decoder

import (
	barcode "github.com/gosymbol/decoder"
	"github.com/gosymbol/decoder/bitutil"
	"github.com/gosymbol/decoder/internal"
	"github.com/gosymbol/decoder/reedsolomon"
	"github.com/rs/zerolog"
)

// Decoder decodes Data Matrix ECC-200 barcodes.
type Decoder struct {
	rsDecoder *reedsolomon.Decoder
	log       zerolog.Logger
}

// NewDecoder creates a new Data Matrix Decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		rsDecoder: reedsolomon.NewDecoder(reedsolomon.DataMatrixField256),
	}
}

// SetLogger attaches a logger that receives one debug line per fallback
// de-interleaving/mirroring attempt. The zero value logs nothing.
func (d *Decoder) SetLogger(log zerolog.Logger) {
	d.log = log
}

// Decode decodes a Data Matrix bit matrix into a DecoderResult.
// The input BitMatrix should represent the full Data Matrix symbol including
// finder patterns and timing.
//
// Two fallbacks are attempted before giving up: a handful of 144x144
// (version 24) encoders interleave their two trailing EC blocks one
// position off from the ISO layout (see GetDataBlocksFix259), and some
// printers emit the L-shaped finder mirrored about the main diagonal. Both
// are retried only after the straightforward reading fails, since they
// never apply to a correctly-formed symbol.
func (d *Decoder) Decode(bits *bitutil.BitMatrix) (*internal.DecoderResult, error) {
	dr, err := d.decodeOnce(bits, false)
	if err == nil {
		return dr, nil
	}

	d.log.Debug().Msg("datamatrix: standard de-interleaving failed, retrying with fix259 layout")
	if dr2, err2 := d.decodeOnce(bits, true); err2 == nil {
		return dr2, nil
	}

	d.log.Debug().Msg("datamatrix: fix259 retry failed, retrying with mirrored matrix")
	mirrored := bits.Clone()
	mirrored.Mirror()
	if dr3, err3 := d.decodeOnce(mirrored, false); err3 == nil {
		return dr3, nil
	}
	if dr4, err4 := d.decodeOnce(mirrored, true); err4 == nil {
		return dr4, nil
	}

	return nil, err
}

func (d *Decoder) decodeOnce(bits *bitutil.BitMatrix, fix259 bool) (*internal.DecoderResult, error) {
	// Step 1: Read raw codewords from the bit matrix using the placement algorithm.
	rawCodewords, version, err := ReadCodewords(bits)
	if err != nil {
		return nil, err
	}

	// Step 2: Split raw codewords into data and EC blocks.
	var dataBlocks []DataBlock
	if fix259 {
		dataBlocks, err = GetDataBlocksFix259(rawCodewords, version)
	} else {
		dataBlocks, err = GetDataBlocks(rawCodewords, version)
	}
	if err != nil {
		return nil, err
	}

	// Step 3: Error-correct each block using Reed-Solomon.
	totalDataBytes := 0
	for _, db := range dataBlocks {
		totalDataBytes += db.NumDataCodewords
	}

	resultBytes := make([]byte, totalDataBytes)
	dataBlocksCount := len(dataBlocks)
	totalErrorsCorrected := 0

	for j := 0; j < dataBlocksCount; j++ {
		codewordBytes := dataBlocks[j].Codewords
		numDataCodewords := dataBlocks[j].NumDataCodewords

		corrected, err := d.correctErrors(codewordBytes, numDataCodewords)
		if err != nil {
			return nil, err
		}
		totalErrorsCorrected += corrected

		// De-interlace data blocks: block j's i-th codeword goes to
		// position i*dataBlocksCount+j in the result.
		for i := 0; i < numDataCodewords; i++ {
			resultBytes[i*dataBlocksCount+j] = codewordBytes[i]
		}
	}

	// Step 4: Decode the data codewords into text.
	dr, err := DecodeBitStream(resultBytes)
	if err != nil {
		return nil, err
	}
	dr.ErrorsCorrected = totalErrorsCorrected
	if dr.SymbologyModifier == 0 {
		dr.SymbologyModifier = 1
	}
	return dr, nil
}

// correctErrors uses Reed-Solomon error correction to fix errors in a block.
func (d *Decoder) correctErrors(codewordBytes []byte, numDataCodewords int) (int, error) {
	numCodewords := len(codewordBytes)

	// Convert to int slice for RS decoder
	codewordsInts := make([]int, numCodewords)
	for i := 0; i < numCodewords; i++ {
		codewordsInts[i] = int(codewordBytes[i]) & 0xFF
	}

	numECCodewords := numCodewords - numDataCodewords
	errorsCorrected, err := d.rsDecoder.Decode(codewordsInts, numECCodewords)
	if err != nil {
		return 0, barcode.ErrChecksum
	}

	// Copy corrected values back
	for i := 0; i < numDataCodewords; i++ {
		codewordBytes[i] = byte(codewordsInts[i])
	}
	return errorsCorrected, nil
}
