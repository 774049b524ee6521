package ibm

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnknownDistortionKey is returned when an (i, l, m) key has no
	// distortion row, meaning the parameters do not match the corpus.
	ErrUnknownDistortionKey = errors.New("unknown distortion key")
	// ErrPositionOutOfRange is returned for a target position outside 0..l.
	ErrPositionOutOfRange = errors.New("target position out of range")
)

// Key identifies a distortion distribution: source position I (1-based),
// target length L excluding NULL, and source length M.
type Key struct {
	I, L, M int
}

func (k Key) String() string {
	return fmt.Sprintf("%d-%d-%d", k.I, k.L, k.M)
}

// DistortionTable holds q(j|i,l,m) with its accumulators c(j|i,l,m) and
// c(i,l,m). Each row has exactly L+1 slots, slot 0 being NULL.
type DistortionTable struct {
	rows map[Key]*distRow
	keys []Key // allocation order
}

type distRow struct {
	prob  []float64
	count []float64
	total float64
}

// NewDistortionTable creates an empty distortion table.
func NewDistortionTable() *DistortionTable {
	return &DistortionTable{rows: make(map[Key]*distRow)}
}

// Allocate creates a uniform row q(j|k) = 1/(L+1) for k if it does not
// exist yet. It reports whether a row was created.
func (dt *DistortionTable) Allocate(k Key) bool {
	if dt.Has(k) {
		return false
	}
	r := dt.newRow(k)
	for j := range r.prob {
		r.prob[j] = 1 / float64(k.L+1)
	}
	return true
}

func (dt *DistortionTable) newRow(k Key) *distRow {
	r := &distRow{
		prob:  make([]float64, k.L+1),
		count: make([]float64, k.L+1),
	}
	dt.rows[k] = r
	dt.keys = append(dt.keys, k)
	return r
}

// Has reports whether k has a row.
func (dt *DistortionTable) Has(k Key) bool {
	_, ok := dt.rows[k]
	return ok
}

// Row returns the probabilities q(·|k) indexed by target position.
// The returned slice must not be modified.
func (dt *DistortionTable) Row(k Key) ([]float64, error) {
	r, ok := dt.rows[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDistortionKey, k)
	}
	return r.prob, nil
}

// probOf returns q(j|k).
func (dt *DistortionTable) probOf(k Key, j int) (float64, error) {
	r, ok := dt.rows[k]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownDistortionKey, k)
	}
	if j < 0 || j >= len(r.prob) {
		return 0, fmt.Errorf("%w: j=%d for key %s", ErrPositionOutOfRange, j, k)
	}
	return r.prob[j], nil
}

// Set stores q(j|k) = p, allocating a zero row for k if needed.
func (dt *DistortionTable) Set(k Key, j int, p float64) error {
	if j < 0 || j > k.L {
		return fmt.Errorf("%w: j=%d for key %s", ErrPositionOutOfRange, j, k)
	}
	r, ok := dt.rows[k]
	if !ok {
		r = dt.newRow(k)
	}
	r.prob[j] = p
	return nil
}

// AddCount adds delta to c(j|k) and c(k).
func (dt *DistortionTable) AddCount(k Key, j int, delta float64) {
	r := dt.rows[k]
	r.count[j] += delta
	r.total += delta
}

// countOf returns the accumulated c(j|k).
func (dt *DistortionTable) countOf(k Key, j int) float64 {
	r, ok := dt.rows[k]
	if !ok || j < 0 || j >= len(r.count) {
		return 0
	}
	return r.count[j]
}

// Normalize sets q(j|k) = c(j|k)/c(k). Rows with no mass keep their values.
func (dt *DistortionTable) Normalize() {
	for _, k := range dt.keys {
		r := dt.rows[k]
		if r.total > 0 {
			floats.ScaleTo(r.prob, 1/r.total, r.count)
		}
	}
}

// ResetCounts zeroes every accumulator.
func (dt *DistortionTable) ResetCounts() {
	for _, r := range dt.rows {
		clear(r.count)
		r.total = 0
	}
}

// Keys returns the keys in allocation order.
func (dt *DistortionTable) Keys() []Key {
	return append([]Key(nil), dt.keys...)
}

// Len returns the number of keys.
func (dt *DistortionTable) Len() int {
	return len(dt.keys)
}
