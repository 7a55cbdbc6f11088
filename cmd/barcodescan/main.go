// Command barcodescan locates and decodes Data Matrix and PDF417 symbols in
// image files.
package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	barcode "github.com/gosymbol/decoder"
	"github.com/gosymbol/decoder/binarizer"

	// Register the format readers this tool scans for.
	_ "github.com/gosymbol/decoder/datamatrix"
	_ "github.com/gosymbol/decoder/pdf417"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// version is set at build time via -ldflags; left as a placeholder here.
var version = "dev"

// profile holds the subset of DecodeOptions a user can pin in a --profile
// YAML file, so a scanning setup can be reused across invocations.
type profile struct {
	TryHarder   bool `yaml:"try_harder"`
	Pure        bool `yaml:"pure"`
	AlsoInvert  bool `yaml:"also_inverted"`
	Verbose     bool `yaml:"verbose"`
}

func loadProfile(path string) (profile, error) {
	var p profile
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

func main() {
	var (
		profilePath string
		tryHarder   bool
		pure        bool
		alsoInvert  bool
		verbose     bool
	)

	root := &cobra.Command{
		Use:   "barcodescan [flags] <image-file> [image-file...]",
		Short: "Detect and decode Data Matrix and PDF417 barcodes in image files",
	}
	root.PersistentFlags().StringVar(&profilePath, "profile", "", "YAML file of default scan options")
	root.PersistentFlags().BoolVar(&tryHarder, "try-harder", false, "spend more time looking for barcodes")
	root.PersistentFlags().BoolVar(&pure, "pure", false, "hint that the image is a clean barcode render with minimal border")
	root.PersistentFlags().BoolVar(&alsoInvert, "also-inverted", false, "also try decoding an inverted copy of the image")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decode attempts and fallback retries")

	scanCmd := &cobra.Command{
		Use:   "scan <image-file> [image-file...]",
		Short: "Scan one or more image files for barcodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			// CLI flags override whatever the profile set, matching cobra's
			// usual flag-beats-config precedence.
			if cmd.Flags().Changed("try-harder") {
				p.TryHarder = tryHarder
			}
			if cmd.Flags().Changed("pure") {
				p.Pure = pure
			}
			if cmd.Flags().Changed("also-inverted") {
				p.AlsoInvert = alsoInvert
			}
			if cmd.Flags().Changed("verbose") {
				p.Verbose = verbose
			}

			log := zerolog.New(os.Stderr).With().Timestamp().Logger()
			if !p.Verbose {
				log = log.Level(zerolog.Disabled)
			}

			exitCode := 0
			for _, path := range args {
				results, err := scanFile(path, p, log)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
					exitCode = 1
					continue
				}
				if len(results) == 0 {
					fmt.Fprintf(os.Stderr, "%s: no barcodes found\n", path)
					exitCode = 1
					continue
				}
				for _, r := range results {
					if len(args) > 1 {
						fmt.Printf("%s: ", path)
					}
					fmt.Printf("[%s] %s\n", r.Format, r.Text)
				}
			}
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}
	root.AddCommand(scanCmd)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the barcodescan version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// scannedFormats lists the formats this tool looks for, matching this
// library's scope: Data Matrix and PDF417.
var scannedFormats = []barcode.Format{
	barcode.FormatDataMatrix,
	barcode.FormatPDF417,
}

func scanFile(path string, p profile, log zerolog.Logger) ([]*barcode.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	source := barcode.NewImageLuminanceSource(img)
	opts := &barcode.DecodeOptions{
		TryHarder:   p.TryHarder,
		PureBarcode: p.Pure,
		AlsoInverted: p.AlsoInvert,
		Logger:      log,
	}

	// Try GlobalHistogram binarizer first (fast, works well for clean images),
	// then fall back to Hybrid binarizer (local adaptive thresholding, better
	// for photographs with uneven lighting).
	bitmaps := []*barcode.BinaryBitmap{
		barcode.NewBinaryBitmap(binarizer.NewGlobalHistogram(source)),
		barcode.NewBinaryBitmap(binarizer.NewHybrid(source)),
	}

	var results []*barcode.Result
	seen := map[string]bool{}

	for _, bitmap := range bitmaps {
		for _, format := range scannedFormats {
			formatOpts := *opts
			formatOpts.PossibleFormats = []barcode.Format{format}

			result, err := tryDecode(bitmap, &formatOpts)
			if err != nil {
				log.Debug().Str("file", path).Str("format", format.String()).Err(err).Msg("decode attempt failed")
				continue
			}
			key := fmt.Sprintf("%s:%s", result.Format, result.Text)
			if seen[key] {
				continue
			}
			seen[key] = true
			log.Debug().Str("file", path).Str("format", format.String()).Str("decoding_id", result.DecodingID.String()).Msg("decoded")
			results = append(results, result)
		}
	}

	return results, nil
}

// tryDecode calls barcode.Decode but recovers from panics that decoders may
// raise on malformed input, converting them to errors.
func tryDecode(bitmap *barcode.BinaryBitmap, opts *barcode.DecodeOptions) (result *barcode.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return barcode.Decode(bitmap, opts)
}
