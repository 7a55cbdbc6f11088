package qrcode

import barcode "github.com/gosymbol/decoder"

func init() {
	barcode.RegisterReader(barcode.FormatQRCode, func(opts *barcode.DecodeOptions) barcode.Reader {
		return NewReader()
	})
	barcode.RegisterWriter(barcode.FormatQRCode, func() barcode.Writer {
		return NewWriter()
	})
}
