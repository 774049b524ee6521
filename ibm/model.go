package ibm

import (
	"fmt"
	"strings"
)

// Model selects the alignment model.
type Model int

const (
	// Model1 estimates lexical translation probabilities t(f|e) only.
	// NULL is the last target position.
	Model1 Model = iota + 1
	// Model2 adds distortion probabilities q(j|i,l,m).
	// NULL is target position 0.
	Model2
)

// ParseModel parses a model name such as "ibm1", "model2" or "2".
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "ibm1", "model1":
		return Model1, nil
	case "2", "ibm2", "model2":
		return Model2, nil
	}
	return 0, fmt.Errorf("unknown model %q (want ibm1 or ibm2)", s)
}

func (m Model) String() string {
	switch m {
	case Model1:
		return "ibm1"
	case Model2:
		return "ibm2"
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

// withNull returns the target words with NullToken placed where the model
// expects it.
func (m Model) withNull(target []string) []string {
	out := make([]string, 0, len(target)+1)
	if m == Model2 {
		out = append(out, NullToken)
		return append(out, target...)
	}
	out = append(out, target...)
	return append(out, NullToken)
}

// encode maps words to IDs, adding unseen words when add is true.
// Unknown words map to -1 otherwise.
func encode(v *Vocabulary, words []string, add bool) []int {
	ids := make([]int, len(words))
	for i, w := range words {
		if add {
			ids[i] = v.Add(w)
		} else {
			ids[i] = v.Get(w)
		}
	}
	return ids
}
