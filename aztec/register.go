package aztec

import barcode "github.com/gosymbol/decoder"

func init() {
	barcode.RegisterReader(barcode.FormatAztec, func(opts *barcode.DecodeOptions) barcode.Reader {
		return NewReader()
	})
	barcode.RegisterWriter(barcode.FormatAztec, func() barcode.Writer {
		return NewWriter()
	})
}
