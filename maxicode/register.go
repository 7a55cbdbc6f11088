package maxicode

import barcode "github.com/gosymbol/decoder"

func init() {
	barcode.RegisterReader(barcode.FormatMaxiCode, func(opts *barcode.DecodeOptions) barcode.Reader {
		return NewReader()
	})
}
