// Package aztec provides Aztec barcode reading and writing.
package aztec

import (
	barcode "github.com/gosymbol/decoder"
	"github.com/gosymbol/decoder/aztec/decoder"
	"github.com/gosymbol/decoder/aztec/detector"
)

// Reader decodes Aztec barcodes from binary images.
type Reader struct{}

// NewReader creates a new Aztec Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Decode locates and decodes an Aztec barcode in the given image.
func (r *Reader) Decode(image *barcode.BinaryBitmap, opts *barcode.DecodeOptions) (*barcode.Result, error) {
	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	detResult, err := detector.Detect(matrix, false)
	if err != nil {
		return nil, err
	}

	// Convert detector result to decoder input.
	ddata := &decoder.AztecDetectorResult{
		Bits:         detResult.Bits,
		Points:       detResult.Points,
		Compact:      detResult.Compact,
		NbDataBlocks: detResult.NbDataBlocks,
		NbLayers:     detResult.NbLayers,
	}

	dr, err := decoder.Decode(ddata)
	if err != nil {
		return nil, err
	}

	result := barcode.NewResult(dr.Text, dr.RawBytes, detResult.Points, barcode.FormatAztec)
	result.PutMetadata(barcode.MetadataSymbologyIdentifier, "]z0")
	return result, nil
}

// Reset resets internal state.
func (r *Reader) Reset() {}

// Compile-time check.
var _ barcode.Reader = (*Reader)(nil)
