package ibm

import (
	"bufio"
	"fmt"
	"io"
)

// Alignment links one source word to a target position.
// Target 0 means the word is aligned to nothing.
type Alignment struct {
	Sentence int // 1-based sentence index
	Target   int
	Source   int // 1-based source position
}

// Align returns, for every source word, the target position with the
// highest score. Ties go to the later position. Pairs outside the
// translation support score as absent; a word with no candidate at all
// aligns to 0.
//
// Model 1 numbers target positions 1..l+1 with NULL last and scores
// t(f|e). Model 2 numbers them 0..l with NULL at 0 and scores
// t(f|e)·q(j|i,l,m); a missing (i,l,m) key is an error.
func (p *Params) Align(source, target []string) ([]int, error) {
	s := p.Encode(source, target, false)
	out := make([]int, len(s.Source))
	for i, f := range s.Source {
		var q []float64
		offset := 1
		if p.Model == Model2 {
			var err error
			if q, err = p.Q.Row(s.key(i)); err != nil {
				return nil, err
			}
			offset = 0
		}

		best, a := 0.0, 0
		for j, e := range s.Target {
			score, ok := p.T.Prob(f, e)
			if !ok {
				continue
			}
			if q != nil {
				score *= q[j]
			}
			if score >= best {
				best, a = score, j+offset
			}
		}
		out[i] = a
	}
	return out, nil
}

// AlignCorpus aligns every sentence pair in c and writes one line per
// source word to w.
func AlignCorpus(c Corpus, p *Params, w io.Writer) error {
	bw := bufio.NewWriter(w)
	n := 0
	err := c.Each(func(source, target []string) error {
		n++
		a, err := p.Align(source, target)
		if err != nil {
			return fmt.Errorf("sentence %d: %w", n, err)
		}
		for i, j := range a {
			if err := WriteAlignment(bw, Alignment{Sentence: n, Target: j, Source: i + 1}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// WriteAlignment writes a as "<sentence> <target> <source>\n".
func WriteAlignment(w io.Writer, a Alignment) error {
	_, err := fmt.Fprintf(w, "%d %d %d\n", a.Sentence, a.Target, a.Source)
	return err
}

// ReadAlignments parses alignment lines as written by WriteAlignment.
// Blank lines are skipped.
func ReadAlignments(r io.Reader) ([]Alignment, error) {
	var out []Alignment
	err := eachLine(r, func(n int, fields []string) error {
		if len(fields) != 3 {
			return malformed(n, "want 3 fields, got %d", len(fields))
		}
		var v [3]int
		for i, s := range fields {
			x, err := parseInt(n, s)
			if err != nil {
				return err
			}
			v[i] = x
		}
		out = append(out, Alignment{Sentence: v[0], Target: v[1], Source: v[2]})
		return nil
	})
	return out, err
}
