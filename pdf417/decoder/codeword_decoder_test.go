package decoder

import "testing"

func TestGetDecodedValueExactMatch(t *testing.T) {
	for value := 0; value < 20; value++ {
		pattern := symbolTable[value]
		counts := runCountsFromPattern(pattern)
		got := GetDecodedValue(counts)
		if got != value {
			t.Errorf("GetDecodedValue(%v) = %d, want %d", counts, got, value)
		}
	}
}

func TestGetClosestDecodedValuePicksNearestRatio(t *testing.T) {
	pattern := symbolTable[5]
	counts := runCountsFromPattern(pattern)
	// Perturb one run slightly without changing the sum. The perturbed
	// counts need not be nearest to symbol 5, so only a valid codeword
	// index is checked.
	if counts[0] > 1 {
		counts[0]--
		counts[1]++
	}
	got := getClosestDecodedValue(counts)
	if got < 0 {
		t.Errorf("getClosestDecodedValue(%v) = %d, want a valid codeword", counts, got)
	}
}

// runCountsFromPattern decodes a getBitValue-style packed pattern back into
// the eight run lengths that produced it, for use as test fixtures.
func runCountsFromPattern(pattern int) []int {
	counts := make([]int, barsInModule)
	idx := barsInModule - 1
	bitsLeft := modulesInCodeword
	currentBit := pattern & 0x1
	for bitsLeft > 0 && idx >= 0 {
		run := 0
		for bitsLeft > 0 && (pattern&0x1) == currentBit {
			run++
			pattern >>= 1
			bitsLeft--
		}
		counts[idx] = run
		idx--
		currentBit = pattern & 0x1
	}
	return counts
}
