package decoder

// These mirror the package-level constants in pdf417.Common (NumberOfCodewords,
// MaxCodewordsInBarcode, MinRowsInBarcode, MaxRowsInBarcode, ModulesInCodeword,
// BarsInModule). They're re-declared locally rather than imported because the
// pdf417 package itself imports this decoder package; importing back would be
// a cycle.
const (
	numberOfCodewords     = 929
	maxCodewordsInBarcode = 928
	minRowsInBarcode      = 3
	maxRowsInBarcode      = 90
	modulesInCodeword     = 17
	barsInModule          = 8
)

// symbolTable holds, for every codeword value 0..928, the bit pattern its
// cluster-0 (row%3==0, bucket 0) physical symbol encodes: eight alternating
// bar/space run lengths summing to modulesInCodeword, packed MSB-first by
// getBitValue (bar runs contribute 1 bits, space runs contribute 0 bits).
//
// PDF417 actually defines three such tables, one per cluster (bucket 0, 3,
// 6 -- row%3 0, 1, 2), all sharing the same codeword-value domain. The
// three tables are generated independently by clusterSymbolTables and
// merged into the single codewordForSymbol map that getCodeword consults;
// a pattern's bucket follows from its run lengths, so patterns of
// different clusters never collide in that map.
var clusterTables = clusterSymbolTables()

var symbolTable = clusterTables[0]

// codewordForSymbol maps a bit pattern (as produced by getBitValue) back to
// its codeword value, built from all three clusterTables. Declared as a var initializer
// (not inside init()) so Go's cross-file dependency analysis runs it after
// clusterTables regardless of file order within the package.
var codewordForSymbol = buildCodewordIndex(clusterTables)

func buildCodewordIndex(clusters [3][]int) map[int]int {
	index := make(map[int]int, len(clusters[0])*3)
	for _, table := range clusters {
		for value, pattern := range table {
			index[pattern] = value
		}
	}
	return index
}

// clusterSymbolTables generates, for each of PDF417's three row clusters
// (bucket 0, 3 and 6), a slice of NumberOfCodewords bit patterns: run-length
// vectors of eight alternating bar/space counts (each in [1,6]) summing to
// modulesInCodeword, enumerated in a fixed lexicographic order and assigned
// to codeword values 0..928 in that order, filtered to the runs whose
// bucket matches the cluster.
//
// The real ISO/IEC 15438 symbol assignment is printed table data without a
// closed-form derivation and was not present in the source material this
// package was ported from; this generates a structurally valid substitute
// bijection (same bucket/value invariants used throughout this package)
// rather than risk transcribing an unverifiable 2787-entry table by hand.
func clusterSymbolTables() [3][]int {
	var runs [][8]int
	var run [8]int
	var generate func(pos, remaining int)
	generate = func(pos, remaining int) {
		if pos == 8 {
			if remaining == 0 {
				runs = append(runs, run)
			}
			return
		}
		slotsLeft := 8 - pos
		for w := 1; w <= 6; w++ {
			if remaining-w < slotsLeft-1 || remaining-w > 6*(slotsLeft-1) {
				continue
			}
			run[pos] = w
			generate(pos+1, remaining-w)
		}
	}
	generate(0, modulesInCodeword)

	var tables [3][]int
	for _, r := range runs {
		bucket := ((r[0]-r[2]+r[4]-r[6])%9 + 9) % 9
		cluster := bucket / 3
		if bucket%3 != 0 || cluster > 2 {
			continue
		}
		if len(tables[cluster]) >= numberOfCodewords {
			continue
		}
		tables[cluster] = append(tables[cluster], bitValueOf(r))
	}
	return tables
}

func bitValueOf(r [8]int) int {
	value := 0
	for i, w := range r {
		bit := 0
		if i%2 == 0 {
			bit = 1
		}
		for j := 0; j < w; j++ {
			value = (value << 1) | bit
		}
	}
	return value
}

// getCodeword returns the codeword value for a physical bit pattern, or -1
// if the pattern is not a valid symbol in any cluster.
func getCodeword(symbol int) int {
	if value, ok := codewordForSymbol[symbol]; ok {
		return value
	}
	return -1
}
