package decoder

import "testing"

func TestClusterSymbolTablesAreComplete(t *testing.T) {
	for cluster, table := range clusterTables {
		if len(table) != numberOfCodewords {
			t.Errorf("cluster %d: got %d symbols, want %d", cluster, len(table), numberOfCodewords)
		}
	}
}

func TestClusterSymbolTablesAreBijective(t *testing.T) {
	for cluster, table := range clusterTables {
		seen := make(map[int]bool, len(table))
		for _, pattern := range table {
			if seen[pattern] {
				t.Errorf("cluster %d: duplicate pattern %d", cluster, pattern)
			}
			seen[pattern] = true
		}
	}
}

func TestGetCodewordRoundTrips(t *testing.T) {
	for value, pattern := range symbolTable {
		if got := getCodeword(pattern); got != value {
			t.Errorf("getCodeword(%d) = %d, want %d", pattern, got, value)
		}
	}
}

func TestGetCodewordUnknownPattern(t *testing.T) {
	if got := getCodeword(-1); got != -1 {
		t.Errorf("getCodeword(-1) = %d, want -1", got)
	}
}

func TestBitValueOfPacksMSBFirst(t *testing.T) {
	// A single bar of width 17 followed by nothing isn't a real codeword
	// shape, but bitValueOf should still pack bars as 1s and spaces as 0s
	// in run order.
	r := [8]int{2, 2, 2, 2, 2, 2, 2, 3}
	got := bitValueOf(r)
	want := 0
	bit := 1
	for i, w := range r {
		if i%2 == 0 {
			bit = 1
		} else {
			bit = 0
		}
		for j := 0; j < w; j++ {
			want = (want << 1) | bit
		}
	}
	if got != want {
		t.Errorf("bitValueOf(%v) = %d, want %d", r, got, want)
	}
}
