package ibm

// TransTable is the sparse translation table t(f|e) together with its
// expected-count accumulators c(f,e) and c(e).
//
// Rows are indexed by source word ID and keep their target entries in
// insertion order, so iteration is deterministic. Entries are never
// removed; the support only grows through Entry.
type TransTable struct {
	rows     []*transRow
	marginal []float64 // c(e), indexed by target ID
}

type transRow struct {
	index map[int]int // target ID -> slot
	e     []int
	prob  []float64
	count []float64
}

// NewTransTable creates an empty translation table.
func NewTransTable() *TransTable {
	return &TransTable{}
}

func (tt *TransTable) row(f int, create bool) *transRow {
	if f < 0 {
		return nil
	}
	for create && f >= len(tt.rows) {
		tt.rows = append(tt.rows, nil)
	}
	if f >= len(tt.rows) {
		return nil
	}
	r := tt.rows[f]
	if r == nil && create {
		r = &transRow{index: make(map[int]int)}
		tt.rows[f] = r
	}
	return r
}

func (tt *TransTable) growMarginal(e int) {
	for e >= len(tt.marginal) {
		tt.marginal = append(tt.marginal, 0)
	}
}

// Prob returns t(f|e) and whether the pair is in the support.
func (tt *TransTable) Prob(f, e int) (float64, bool) {
	r := tt.row(f, false)
	if r == nil || e < 0 {
		return 0, false
	}
	s, ok := r.index[e]
	if !ok {
		return 0, false
	}
	return r.prob[s], true
}

// Set stores t(f|e) = p, inserting the pair if absent.
func (tt *TransTable) Set(f, e int, p float64) {
	r := tt.row(f, true)
	r.prob[r.slot(e)] = p
	tt.growMarginal(e)
}

// Entry returns t(f|e), first inserting the pair with value def if it is
// not yet in the support.
func (tt *TransTable) Entry(f, e int, def float64) float64 {
	r := tt.row(f, true)
	s, ok := r.index[e]
	if !ok {
		s = r.slot(e)
		r.prob[s] = def
		tt.growMarginal(e)
	}
	return r.prob[s]
}

func (r *transRow) slot(e int) int {
	if s, ok := r.index[e]; ok {
		return s
	}
	s := len(r.e)
	r.index[e] = s
	r.e = append(r.e, e)
	r.prob = append(r.prob, 0)
	r.count = append(r.count, 0)
	return s
}

// AddCount adds delta to c(f,e) and c(e). The pair must be in the support.
func (tt *TransTable) AddCount(f, e int, delta float64) {
	r := tt.row(f, false)
	r.count[r.index[e]] += delta
	tt.marginal[e] += delta
}

// countOf returns the accumulated c(f,e).
func (tt *TransTable) countOf(f, e int) float64 {
	r := tt.row(f, false)
	if r == nil {
		return 0
	}
	s, ok := r.index[e]
	if !ok {
		return 0
	}
	return r.count[s]
}

// marginalOf returns the accumulated c(e).
func (tt *TransTable) marginalOf(e int) float64 {
	if e < 0 || e >= len(tt.marginal) {
		return 0
	}
	return tt.marginal[e]
}

// Normalize sets t(f|e) = c(f,e)/c(e) for every entry. Entries whose
// target word gathered no mass keep their previous value.
func (tt *TransTable) Normalize() {
	for _, r := range tt.rows {
		if r == nil {
			continue
		}
		for s, e := range r.e {
			if z := tt.marginal[e]; z > 0 {
				r.prob[s] = r.count[s] / z
			}
		}
	}
}

// ResetCounts zeroes every accumulator.
func (tt *TransTable) ResetCounts() {
	for _, r := range tt.rows {
		if r != nil {
			clear(r.count)
		}
	}
	clear(tt.marginal)
}

// Each calls fn for every entry, grouped by source ID in ascending order
// and by target ID in insertion order.
func (tt *TransTable) Each(fn func(f, e int, p float64)) {
	for f, r := range tt.rows {
		if r == nil {
			continue
		}
		for s, e := range r.e {
			fn(f, e, r.prob[s])
		}
	}
}

// Len returns the number of entries in the support.
func (tt *TransTable) Len() int {
	n := 0
	for _, r := range tt.rows {
		if r != nil {
			n += len(r.e)
		}
	}
	return n
}
