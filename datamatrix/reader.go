// Package datamatrix provides Data Matrix (ECC-200) reading and writing.
package datamatrix

import (
	"fmt"

	barcode "github.com/gosymbol/decoder"
	"github.com/gosymbol/decoder/bitutil"
	"github.com/gosymbol/decoder/datamatrix/decoder"
	"github.com/gosymbol/decoder/datamatrix/detector"
	"github.com/gosymbol/decoder/internal"
)

// Reader decodes Data Matrix barcodes from binary images.
type Reader struct {
	dec *decoder.Decoder
}

// NewReader creates a new Data Matrix Reader.
func NewReader() *Reader {
	return &Reader{
		dec: decoder.NewDecoder(),
	}
}

// Decode locates and decodes a Data Matrix barcode in the given image.
func (r *Reader) Decode(image *barcode.BinaryBitmap, opts *barcode.DecodeOptions) (*barcode.Result, error) {
	if opts == nil {
		opts = &barcode.DecodeOptions{}
	}
	r.dec.SetLogger(opts.Logger)

	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	if opts.PureBarcode {
		bits, err := extractPureBits(matrix)
		if err != nil {
			return nil, err
		}
		dr, err := r.dec.Decode(bits)
		if err != nil {
			return nil, err
		}
		result := barcode.NewResult(dr.Text, dr.RawBytes, nil, barcode.FormatDataMatrix)
		putDataMatrixMetadata(result, dr)
		return result, nil
	}

	detResult, err := detector.Detect(matrix)
	if err != nil {
		return nil, err
	}

	dr, err := r.dec.Decode(detResult.Bits)
	if err != nil {
		return nil, err
	}

	result := barcode.NewResult(dr.Text, dr.RawBytes, detResult.Points, barcode.FormatDataMatrix)
	putDataMatrixMetadata(result, dr)
	return result, nil
}

func putDataMatrixMetadata(result *barcode.Result, dr *internal.DecoderResult) {
	result.PutMetadata(barcode.MetadataErrorsCorrected, dr.ErrorsCorrected)
	result.PutMetadata(barcode.MetadataSymbologyIdentifier, fmt.Sprintf("]d%d", dr.SymbologyModifier))
	if dr.StructuredAppend != nil {
		result.PutMetadata(barcode.MetadataStructuredAppendSequence, dr.StructuredAppend.Index)
		result.PutMetadata(barcode.MetadataStructuredAppendParity, dr.StructuredAppend.Count)
	}
}

// Reset resets internal state.
func (r *Reader) Reset() {}

// extractPureBits extracts a Data Matrix from a "pure" image — one that
// contains only the unrotated, unskewed barcode with some white border.
func extractPureBits(image *bitutil.BitMatrix) (*bitutil.BitMatrix, error) {
	leftTopBlack := image.TopLeftOnBit()
	rightBottomBlack := image.BottomRightOnBit()
	if leftTopBlack == nil || rightBottomBlack == nil {
		return nil, barcode.ErrNotFound
	}

	moduleSize, err := moduleSizePure(leftTopBlack, image)
	if err != nil {
		return nil, err
	}

	top := leftTopBlack[1]
	bottom := rightBottomBlack[1]
	left := leftTopBlack[0]
	right := rightBottomBlack[0]

	matrixWidth := (right - left + 1) / moduleSize
	matrixHeight := (bottom - top + 1) / moduleSize
	if matrixWidth <= 0 || matrixHeight <= 0 {
		return nil, barcode.ErrNotFound
	}

	// Nudge to the center of each module
	nudge := moduleSize / 2

	bits := bitutil.NewBitMatrixWithSize(matrixWidth, matrixHeight)
	for y := 0; y < matrixHeight; y++ {
		iOffset := top + y*moduleSize + nudge
		for x := 0; x < matrixWidth; x++ {
			if image.Get(left+x*moduleSize+nudge, iOffset) {
				bits.Set(x, y)
			}
		}
	}
	return bits, nil
}

func moduleSizePure(leftTopBlack []int, image *bitutil.BitMatrix) (int, error) {
	width := image.Width()
	x := leftTopBlack[0]
	y := leftTopBlack[1]

	// Walk right along the top edge to find the module size
	for x < width && image.Get(x, y) {
		x++
	}
	if x == width {
		return 0, barcode.ErrNotFound
	}

	moduleSize := x - leftTopBlack[0]
	if moduleSize == 0 {
		return 0, barcode.ErrNotFound
	}
	return moduleSize, nil
}

// Compile-time check.
var _ barcode.Reader = (*Reader)(nil)
