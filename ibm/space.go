package ibm

// Corpus is a rewindable source of tokenized sentence pairs.
type Corpus interface {
	// Each calls fn for every sentence pair, from the first pair, in a
	// fixed order. Iteration stops at the first error.
	Each(fn func(source, target []string) error) error
}

// Initialize scans the corpus once and builds the initial parameters.
//
// Model 1: the support of t(·|e) is every source word co-occurring with e
// anywhere in the corpus, initialized uniformly to 1/|support(e)|.
//
// Model 2: every (i, l, m) key seen in the corpus gets a uniform
// distortion row. The translation table is copied from seed when given
// (typically trained Model 1 parameters); otherwise it is built the same
// way as for Model 1.
func Initialize(c Corpus, model Model, seed *Params) (*Params, error) {
	p := NewParams(model)
	if model == Model2 && seed != nil {
		p.copyTranslation(seed)
	} else if err := p.initTranslation(c); err != nil {
		return nil, err
	}
	if model == Model2 {
		if err := p.initDistortion(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Params) initTranslation(c Corpus) error {
	// support[e] lists source IDs in first co-occurrence order.
	var support [][]int
	seen := make(map[[2]int]bool)
	err := c.Each(func(source, target []string) error {
		s := p.Encode(source, target, true)
		for _, e := range s.Target {
			for e >= len(support) {
				support = append(support, nil)
			}
			for _, f := range s.Source {
				if seen[[2]int{f, e}] {
					continue
				}
				seen[[2]int{f, e}] = true
				support[e] = append(support[e], f)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for e, fs := range support {
		for _, f := range fs {
			p.T.Set(f, e, 1/float64(len(fs)))
		}
	}
	return nil
}

func (p *Params) initDistortion(c Corpus) error {
	return c.Each(func(source, target []string) error {
		s := p.Encode(source, target, true)
		for i := range s.Source {
			p.Q.Allocate(s.key(i))
		}
		return nil
	})
}

func (p *Params) copyTranslation(seed *Params) {
	seed.T.Each(func(f, e int, prob float64) {
		p.T.Set(p.Source.Add(seed.Source.Word(f)), p.Target.Add(seed.Target.Word(e)), prob)
	})
}
