// Package internal provides shared result types used across barcode format packages.
package internal

import "github.com/google/uuid"

// StructuredAppendInfo describes how a decoded symbol fits into a multi-symbol
// Structured Append sequence, populated by formats whose bitstream carries a
// sequence indicator and file/segment identifier (Data Matrix codeword 233,
// PDF417 macro codewords).
type StructuredAppendInfo struct {
	Index int // 0-based position of this symbol in the sequence
	Count int // total number of symbols in the sequence
	ID    string
}

// DecoderResult encapsulates the result of decoding a matrix of bits.
type DecoderResult struct {
	RawBytes                       []byte
	NumBits                        int
	Text                           string
	ByteSegments                   [][]byte
	ECLevel                        string
	ErrorsCorrected                int
	Erasures                       int
	Other                          interface{}
	StructuredAppendParity         int
	StructuredAppendSequenceNumber int
	SymbologyModifier              int

	// ContentType classifies the decoded payload (e.g. "text", "binary"),
	// set by formats whose bitstream distinguishes them.
	ContentType string
	// SymbologyIdentifier is the AIM symbology identifier string ("]d2",
	// "]L2", ...) reported for this decode, including the FNC1 modifier
	// digit when GS1/AIM application identifiers are present.
	SymbologyIdentifier string
	// StructuredAppend holds multi-symbol sequence info when present.
	StructuredAppend *StructuredAppendInfo
	// ReaderInit marks symbols carrying a Reader Programming / Reader
	// Initialisation instruction.
	ReaderInit bool
	// DecodingID correlates this result with log lines emitted while
	// decoding it.
	DecodingID uuid.UUID
	// Err carries a non-fatal anomaly surfaced alongside an otherwise
	// usable result (for example, a retried de-interleaving path).
	Err error
}

// NewDecoderResult creates a DecoderResult with the basic fields.
func NewDecoderResult(rawBytes []byte, text string, byteSegments [][]byte, ecLevel string) *DecoderResult {
	numBits := 0
	if rawBytes != nil {
		numBits = 8 * len(rawBytes)
	}
	return &DecoderResult{
		RawBytes:                       rawBytes,
		NumBits:                        numBits,
		Text:                           text,
		ByteSegments:                   byteSegments,
		ECLevel:                        ecLevel,
		StructuredAppendParity:         -1,
		StructuredAppendSequenceNumber: -1,
	}
}

// NewDecoderResultFull creates a DecoderResult with structured append info.
func NewDecoderResultFull(rawBytes []byte, text string, byteSegments [][]byte,
	ecLevel string, saSequence, saParity, symbologyModifier int) *DecoderResult {
	numBits := 0
	if rawBytes != nil {
		numBits = 8 * len(rawBytes)
	}
	return &DecoderResult{
		RawBytes:                       rawBytes,
		NumBits:                        numBits,
		Text:                           text,
		ByteSegments:                   byteSegments,
		ECLevel:                        ecLevel,
		StructuredAppendParity:         saParity,
		StructuredAppendSequenceNumber: saSequence,
		SymbologyModifier:              symbologyModifier,
	}
}

// HasStructuredAppend returns true if this result has structured append info.
func (d *DecoderResult) HasStructuredAppend() bool {
	return d.StructuredAppendParity >= 0 && d.StructuredAppendSequenceNumber >= 0
}
