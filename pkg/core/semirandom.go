package core

// TableSize is the number of precomputed values in a Table.
const TableSize = 1024

// Table is a fast, low quality random source: a shuffled permutation of
// [0, TableSize) read through a cursor that wraps back to the start.
//
// Every caller sharing a Table interleaves into one stream, so replaying a
// run requires the same Table, the same cursor and the same call order.
type Table struct {
	values [TableSize]int
	cursor int
}

// Shared is the process-wide table used when a world is not given its own.
var Shared = NewTable(0)

// NewTable builds a table shuffled with the provided seed.
func NewTable(seed int64) *Table {
	t := &Table{}
	t.Reseed(seed)
	return t
}

// Reseed reshuffles the table and rewinds the cursor.
func (t *Table) Reseed(seed int64) {
	for i, v := range NewRNG(seed).Perm(TableSize) {
		t.values[i] = v
	}
	t.cursor = -1
}

// Intn advances the cursor and returns the value under it modulo n.
// Non-positive n yields 0 without advancing.
func (t *Table) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if t.cursor == TableSize-1 {
		t.cursor = 0
	} else {
		t.cursor++
	}
	return t.values[t.cursor] % n
}

// Between returns a value in [lo, hi], both ends inclusive.
func (t *Table) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + t.Intn(hi-lo+1)
}

// Cursor reports the index of the last value handed out, -1 before the first call.
func (t *Table) Cursor() int { return t.cursor }
