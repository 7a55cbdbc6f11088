package barcode_test

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"testing"

	barcode "github.com/gosymbol/decoder"
	"github.com/gosymbol/decoder/binarizer"

	_ "github.com/gosymbol/decoder/aztec"
	_ "github.com/gosymbol/decoder/datamatrix"
	_ "github.com/gosymbol/decoder/oned"
	_ "github.com/gosymbol/decoder/pdf417"
	_ "github.com/gosymbol/decoder/qrcode"
)

func loadTestImage(path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		panic("failed to open image: " + err.Error())
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		panic("failed to decode image: " + err.Error())
	}
	return img
}

var decodeTests = []struct {
	name   string
	path   string
	format barcode.Format
}{
	{"QRCode", "testdata/blackbox/qrcode-1/1.png", barcode.FormatQRCode},
	{"DataMatrix", "testdata/blackbox/datamatrix-1/0123456789.png", barcode.FormatDataMatrix},
	{"PDF417", "testdata/blackbox/pdf417-1/01.png", barcode.FormatPDF417},
	{"Aztec", "testdata/blackbox/aztec-1/abc-37x37.png", barcode.FormatAztec},
	{"Code128", "testdata/blackbox/code128-1/1.png", barcode.FormatCode128},
	{"EAN13", "testdata/blackbox/ean13-1/1.png", barcode.FormatEAN13},
}

var encodeTests = []struct {
	name    string
	content string
	format  barcode.Format
	width   int
	height  int
}{
	{"QRCode", "Hello, World! This is a QR code benchmark test.", barcode.FormatQRCode, 400, 400},
	{"DataMatrix", "Hello DataMatrix", barcode.FormatDataMatrix, 0, 0},
	{"PDF417", "Hello PDF417 Benchmark Test Data", barcode.FormatPDF417, 0, 0},
	{"Aztec", "Hello Aztec Code", barcode.FormatAztec, 0, 0},
	{"Code128", "Hello123", barcode.FormatCode128, 300, 100},
	{"EAN13", "5901234123457", barcode.FormatEAN13, 300, 100},
}

func BenchmarkDecode(b *testing.B) {
	for _, tc := range decodeTests {
		b.Run(tc.name, func(b *testing.B) {
			img := loadTestImage(tc.path)
			opts := &barcode.DecodeOptions{
				PossibleFormats: []barcode.Format{tc.format},
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				// Create fresh binarizer/bitmap each iteration since HybridBinarizer caches
				source := barcode.NewImageLuminanceSource(img)
				bitmap := barcode.NewBinaryBitmap(binarizer.NewHybrid(source))
				_, err := barcode.Decode(bitmap, opts)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEncode(b *testing.B) {
	for _, tc := range encodeTests {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := barcode.Encode(tc.content, tc.format, tc.width, tc.height, nil)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
