package ibm

import "strings"

// testCorpus is an in-memory corpus of "source", "target" line pairs.
type testCorpus [][2]string

func (c testCorpus) Each(fn func(source, target []string) error) error {
	for _, p := range c {
		if err := fn(strings.Fields(p[0]), strings.Fields(p[1])); err != nil {
			return err
		}
	}
	return nil
}

var flowerCorpus = testCorpus{
	{"casa azul", "blue house"},
	{"casa verde", "green house"},
	{"flor azul", "blue flower"},
}

// prob looks up t(f|e) by word.
func prob(p *Params, f, e string) (float64, bool) {
	return p.T.Prob(p.Source.Get(f), p.Target.Get(e))
}

// columnSums returns Σ_f t(f|e) for every target word e.
func columnSums(p *Params) map[string]float64 {
	sums := make(map[string]float64)
	p.T.Each(func(f, e int, v float64) {
		sums[p.Target.Word(e)] += v
	})
	return sums
}
