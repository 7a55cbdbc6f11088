package decoder

import "testing"

func TestGetDataBlocksSingleBlock(t *testing.T) {
	version, err := GetVersionForDimensions(10, 10)
	if err != nil {
		t.Fatalf("GetVersionForDimensions: %v", err)
	}
	raw := make([]byte, version.TotalCodewords())
	for i := range raw {
		raw[i] = byte(i)
	}

	blocks, err := GetDataBlocks(raw, version)
	if err != nil {
		t.Fatalf("GetDataBlocks: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].NumDataCodewords != 3 {
		t.Errorf("NumDataCodewords = %d, want 3", blocks[0].NumDataCodewords)
	}
	if len(blocks[0].Codewords) != len(raw) {
		t.Errorf("Codewords len = %d, want %d", len(blocks[0].Codewords), len(raw))
	}
}

func TestVersion24ECCodewordsIsTotalAcrossBlocks(t *testing.T) {
	version, err := GetVersionForDimensions(144, 144)
	if err != nil {
		t.Fatalf("GetVersionForDimensions: %v", err)
	}
	ecBlocks := version.GetECBlocks()
	// 8 blocks of 62 EC codewords + 2 blocks of 62 EC codewords = 10 blocks total,
	// each carrying 62 EC codewords per ISO/IEC 16022 Table 7.
	wantTotal := 62 * 10
	if ecBlocks.ECCodewords != wantTotal {
		t.Errorf("ECCodewords = %d, want %d", ecBlocks.ECCodewords, wantTotal)
	}
}

func TestGetDataBlocksFix259ShiftsTrailingECBlocks(t *testing.T) {
	version, err := GetVersionForDimensions(144, 144)
	if err != nil {
		t.Fatalf("GetVersionForDimensions: %v", err)
	}
	raw := make([]byte, version.TotalCodewords())
	for i := range raw {
		raw[i] = byte(i % 256)
	}

	standard, err := GetDataBlocks(raw, version)
	if err != nil {
		t.Fatalf("GetDataBlocks: %v", err)
	}
	fixed, err := GetDataBlocksFix259(raw, version)
	if err != nil {
		t.Fatalf("GetDataBlocksFix259: %v", err)
	}
	if len(standard) != len(fixed) {
		t.Fatalf("block count mismatch: %d vs %d", len(standard), len(fixed))
	}

	// Blocks before index 8 are untouched by the fix259 shift.
	for j := 0; j < 8; j++ {
		for i := 0; i < len(standard[j].Codewords); i++ {
			if standard[j].Codewords[i] != fixed[j].Codewords[i] {
				t.Errorf("block %d codeword %d differs between layouts, want same", j, i)
			}
		}
	}

	// At least one trailing block's EC codewords should differ between the
	// two layouts, since fix259 shifts them.
	differs := false
	for j := 8; j < len(standard); j++ {
		numData := standard[j].NumDataCodewords
		for i := numData; i < len(standard[j].Codewords); i++ {
			if standard[j].Codewords[i] != fixed[j].Codewords[i] {
				differs = true
			}
		}
	}
	if !differs {
		t.Error("expected fix259 layout to shift at least one trailing block's EC codewords")
	}
}
