package pdf417

import barcode "github.com/gosymbol/decoder"

func init() {
	barcode.RegisterReader(barcode.FormatPDF417, func(opts *barcode.DecodeOptions) barcode.Reader {
		return NewPDF417Reader()
	})
	barcode.RegisterWriter(barcode.FormatPDF417, func() barcode.Writer {
		return NewPDF417Writer()
	})
}
