package oned

import barcode "github.com/gosymbol/decoder"

func init() {
	// Register all 1D readers via the multi-format 1D reader.
	oneDReaderFactory := func(opts *barcode.DecodeOptions) barcode.Reader {
		return NewMultiFormatOneDReader(opts)
	}
	barcode.RegisterReader(barcode.FormatCode128, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatCode39, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatEAN13, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatEAN8, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatUPCA, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatUPCE, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatITF, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatCodabar, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatRSS14, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatRSSExpanded, oneDReaderFactory)
	barcode.RegisterReader(barcode.FormatCode93, oneDReaderFactory)

	// Register writers
	barcode.RegisterWriter(barcode.FormatCode128, func() barcode.Writer { return NewCode128Writer() })
	barcode.RegisterWriter(barcode.FormatCode39, func() barcode.Writer { return NewCode39Writer() })
	barcode.RegisterWriter(barcode.FormatEAN13, func() barcode.Writer { return NewEAN13Writer() })
	barcode.RegisterWriter(barcode.FormatEAN8, func() barcode.Writer { return NewEAN8Writer() })
	barcode.RegisterWriter(barcode.FormatUPCA, func() barcode.Writer { return NewUPCAWriter() })
	barcode.RegisterWriter(barcode.FormatUPCE, func() barcode.Writer { return NewUPCEWriter() })
	barcode.RegisterWriter(barcode.FormatITF, func() barcode.Writer { return NewITFWriter() })
	barcode.RegisterWriter(barcode.FormatCodabar, func() barcode.Writer { return NewCodabarWriter() })
	barcode.RegisterWriter(barcode.FormatCode93, func() barcode.Writer { return NewCode93Writer() })
}
