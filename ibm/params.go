package ibm

import "math"

// Params is the parameter store for one model: the vocabularies, the
// translation table and, for Model 2, the distortion table.
type Params struct {
	Model  Model
	Source *Vocabulary
	Target *Vocabulary // NullToken is always NullID
	T      *TransTable
	Q      *DistortionTable // nil for Model 1
}

// NewParams creates empty parameters for the given model.
func NewParams(model Model) *Params {
	p := &Params{
		Model:  model,
		Source: NewVocabulary(),
		Target: NewTargetVocabulary(),
		T:      NewTransTable(),
	}
	if model == Model2 {
		p.Q = NewDistortionTable()
	}
	return p
}

// Sentence is a sentence pair encoded against a Params' vocabularies,
// with NULL placed on the target side per the model convention.
type Sentence struct {
	Source []int
	Target []int
}

// Encode converts a tokenized sentence pair to IDs, inserting NULL.
// When add is false unknown words map to -1.
func (p *Params) Encode(source, target []string, add bool) Sentence {
	return Sentence{
		Source: encode(p.Source, source, add),
		Target: encode(p.Target, p.Model.withNull(target), add),
	}
}

// key returns the distortion key for source position i (0-based).
func (s Sentence) key(i int) Key {
	return Key{I: i + 1, L: len(s.Target) - 1, M: len(s.Source)}
}

// Accumulate runs the E-step for one sentence pair, adding expected
// alignment counts to the accumulators. It returns the sentence
// log-likelihood under the current parameters. Source words whose
// candidate mass is zero contribute nothing. s must have been encoded with
// add set, so every ID is known.
func (p *Params) Accumulate(s Sentence) (float64, error) {
	if p.Model == Model2 {
		return p.accumulate2(s)
	}
	return p.accumulate1(s), nil
}

func (p *Params) accumulate1(s Sentence) float64 {
	ll := 0.0
	probs := make([]float64, len(s.Target))
	for _, f := range s.Source {
		z := 0.0
		for j, e := range s.Target {
			probs[j], _ = p.T.Prob(f, e)
			z += probs[j]
		}
		if z <= 0 {
			continue
		}
		for j, e := range s.Target {
			if probs[j] > 0 {
				p.T.AddCount(f, e, probs[j]/z)
			}
		}
		ll += math.Log(z / float64(len(s.Target)))
	}
	return ll
}

func (p *Params) accumulate2(s Sentence) (float64, error) {
	ll := 0.0
	scores := make([]float64, len(s.Target))
	for i, f := range s.Source {
		k := s.key(i)
		q, err := p.Q.Row(k)
		if err != nil {
			return ll, err
		}
		z := 0.0
		for j, e := range s.Target {
			scores[j] = q[j] * p.T.Entry(f, e, 0)
			z += scores[j]
		}
		if z <= 0 {
			continue
		}
		for j, e := range s.Target {
			delta := scores[j] / z
			p.T.AddCount(f, e, delta)
			p.Q.AddCount(k, j, delta)
		}
		ll += math.Log(z)
	}
	return ll, nil
}

// Normalize runs the M-step: it re-estimates t (and q) from the
// accumulated counts, then resets every accumulator.
func (p *Params) Normalize() {
	p.T.Normalize()
	if p.Q != nil {
		p.Q.Normalize()
	}
	p.ResetCounts()
}

// ResetCounts zeroes every accumulator without touching the parameters.
func (p *Params) ResetCounts() {
	p.T.ResetCounts()
	if p.Q != nil {
		p.Q.ResetCounts()
	}
}
