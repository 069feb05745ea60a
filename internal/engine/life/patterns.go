package life

import "sort"

// Pattern is a seed arrangement of live cells given as (row, col) offsets
// inside a Rows x Cols bounding box.
type Pattern struct {
	Name  string
	Rows  int
	Cols  int
	Cells [][2]int
}

const DefaultPattern = "block"

var patterns = map[string]Pattern{
	"block": {Name: "block", Rows: 2, Cols: 2, Cells: [][2]int{
		{0, 0}, {0, 1},
		{1, 0}, {1, 1},
	}},
	"blinker": {Name: "blinker", Rows: 1, Cols: 3, Cells: [][2]int{
		{0, 0}, {0, 1}, {0, 2},
	}},
	"toad": {Name: "toad", Rows: 2, Cols: 4, Cells: [][2]int{
		{0, 1}, {0, 2}, {0, 3},
		{1, 0}, {1, 1}, {1, 2},
	}},
	"beacon": {Name: "beacon", Rows: 4, Cols: 4, Cells: [][2]int{
		{0, 0}, {0, 1},
		{1, 0},
		{2, 3},
		{3, 2}, {3, 3},
	}},
	"pulsar": {Name: "pulsar", Rows: 13, Cols: 13, Cells: [][2]int{
		{0, 2}, {0, 3}, {0, 4}, {0, 8}, {0, 9}, {0, 10},
		{2, 0}, {2, 5}, {2, 7}, {2, 12},
		{3, 0}, {3, 5}, {3, 7}, {3, 12},
		{4, 0}, {4, 5}, {4, 7}, {4, 12},
		{5, 2}, {5, 3}, {5, 4}, {5, 8}, {5, 9}, {5, 10},
		{7, 2}, {7, 3}, {7, 4}, {7, 8}, {7, 9}, {7, 10},
		{8, 0}, {8, 5}, {8, 7}, {8, 12},
		{9, 0}, {9, 5}, {9, 7}, {9, 12},
		{10, 0}, {10, 5}, {10, 7}, {10, 12},
		{12, 2}, {12, 3}, {12, 4}, {12, 8}, {12, 9}, {12, 10},
	}},
	"i-column": {Name: "i-column", Rows: 12, Cols: 3, Cells: [][2]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 1},
		{2, 1},
		{3, 0}, {3, 1}, {3, 2},
		{5, 0}, {5, 1}, {5, 2},
		{6, 0}, {6, 1}, {6, 2},
		{8, 0}, {8, 1}, {8, 2},
		{9, 1},
		{10, 1},
		{11, 0}, {11, 1}, {11, 2},
	}},
	"glider": {Name: "glider", Rows: 3, Cols: 3, Cells: [][2]int{
		{0, 1},
		{1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}},
	"lwss": {Name: "lwss", Rows: 4, Cols: 5, Cells: [][2]int{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 0}, {1, 4},
		{2, 4},
		{3, 0}, {3, 3},
	}},
	"mwss": {Name: "mwss", Rows: 5, Cols: 6, Cells: [][2]int{
		{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5},
		{1, 0}, {1, 5},
		{2, 5},
		{3, 0}, {3, 4},
		{4, 2},
	}},
	"hwss": {Name: "hwss", Rows: 5, Cols: 7, Cells: [][2]int{
		{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}, {0, 6},
		{1, 0}, {1, 6},
		{2, 6},
		{3, 0}, {3, 5},
		{4, 2}, {4, 3},
	}},
}

// Lookup returns the named pattern, falling back to DefaultPattern for
// unknown names.
func Lookup(name string) Pattern {
	if p, ok := patterns[name]; ok {
		return p
	}
	return patterns[DefaultPattern]
}

func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
