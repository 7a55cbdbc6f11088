// Package qrcode provides multi-QR code detection and structured append support.
package qrcode

import (
	"fmt"
	"sort"

	barcode "github.com/gosymbol/decoder"
	"github.com/gosymbol/decoder/qrcode/decoder"
	"github.com/gosymbol/decoder/qrcode/detector"
)

// QRCodeMultiReader can detect and decode multiple QR codes in an image,
// and also combines structured append results.
type QRCodeMultiReader struct {
	dec *decoder.Decoder
}

// NewQRCodeMultiReader creates a new QRCodeMultiReader.
func NewQRCodeMultiReader() *QRCodeMultiReader {
	return &QRCodeMultiReader{dec: decoder.NewDecoder()}
}

// DecodeMultiple detects and decodes all QR codes in the image.
func (r *QRCodeMultiReader) DecodeMultiple(image *barcode.BinaryBitmap, opts *barcode.DecodeOptions) ([]*barcode.Result, error) {
	if opts == nil {
		opts = &barcode.DecodeOptions{}
	}

	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	detectorResults, err := detector.DetectMulti(matrix, opts.TryHarder)
	if err != nil {
		return nil, err
	}

	var results []*barcode.Result
	for _, detResult := range detectorResults {
		dr, err := r.dec.Decode(detResult.Bits, opts.CharacterSet)
		if err != nil {
			continue
		}

		points := make([]barcode.ResultPoint, len(detResult.Points))
		for i, p := range detResult.Points {
			points[i] = barcode.ResultPoint{X: p.X, Y: p.Y}
		}

		result := barcode.NewResult(dr.Text, dr.RawBytes, points, barcode.FormatQRCode)
		if dr.ByteSegments != nil {
			result.PutMetadata(barcode.MetadataByteSegments, dr.ByteSegments)
		}
		if dr.ECLevel != "" {
			result.PutMetadata(barcode.MetadataErrorCorrectionLevel, dr.ECLevel)
		}
		if dr.HasStructuredAppend() {
			result.PutMetadata(barcode.MetadataStructuredAppendSequence, dr.StructuredAppendSequenceNumber)
			result.PutMetadata(barcode.MetadataStructuredAppendParity, dr.StructuredAppendParity)
		}
		result.PutMetadata(barcode.MetadataErrorsCorrected, dr.ErrorsCorrected)
		result.PutMetadata(barcode.MetadataSymbologyIdentifier, fmt.Sprintf("]Q%d", dr.SymbologyModifier))

		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, barcode.ErrNotFound
	}

	results = processStructuredAppend(results)
	return results, nil
}

// Decode decodes a single QR code (delegate to standard reader behavior).
func (r *QRCodeMultiReader) Decode(image *barcode.BinaryBitmap, opts *barcode.DecodeOptions) (*barcode.Result, error) {
	results, err := r.DecodeMultiple(image, opts)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// Reset is a no-op.
func (r *QRCodeMultiReader) Reset() {}

func processStructuredAppend(results []*barcode.Result) []*barcode.Result {
	var newResults []*barcode.Result
	var saResults []*barcode.Result

	for _, result := range results {
		if _, ok := result.Metadata[barcode.MetadataStructuredAppendSequence]; ok {
			saResults = append(saResults, result)
		} else {
			newResults = append(newResults, result)
		}
	}

	if len(saResults) == 0 {
		return results
	}

	// Sort by sequence number
	sort.Slice(saResults, func(i, j int) bool {
		seqI, _ := saResults[i].Metadata[barcode.MetadataStructuredAppendSequence].(int)
		seqJ, _ := saResults[j].Metadata[barcode.MetadataStructuredAppendSequence].(int)
		return seqI < seqJ
	})

	// Concatenate text and raw bytes
	var combinedText string
	var combinedRawBytes []byte
	var combinedByteSegment []byte
	for _, sa := range saResults {
		combinedText += sa.Text
		if sa.RawBytes != nil {
			combinedRawBytes = append(combinedRawBytes, sa.RawBytes...)
		}
		if segs, ok := sa.Metadata[barcode.MetadataByteSegments].([][]byte); ok {
			for _, seg := range segs {
				combinedByteSegment = append(combinedByteSegment, seg...)
			}
		}
	}

	combined := barcode.NewResult(combinedText, combinedRawBytes, nil, barcode.FormatQRCode)
	if len(combinedByteSegment) > 0 {
		combined.PutMetadata(barcode.MetadataByteSegments, [][]byte{combinedByteSegment})
	}
	newResults = append(newResults, combined)
	return newResults
}

// DecodeMultipleFromResults is a convenience for combining results that may
// have been decoded separately but share structured append metadata.
func DecodeMultipleFromResults(results []*barcode.Result) []*barcode.Result {
	return processStructuredAppend(results)
}

// ensure interface compliance
var _ barcode.MultipleBarcodeReader = (*QRCodeMultiReader)(nil)
var _ barcode.Reader = (*QRCodeMultiReader)(nil)
