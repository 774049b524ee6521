// Package ibm implements IBM Model 1 and Model 2 word alignment.
//
// Parameters are estimated with Expectation-Maximization over a
// sentence-aligned bitext and decoded into a most likely alignment per
// sentence pair.
package ibm

// NullToken is the reserved target word meaning "aligned to nothing".
const NullToken = "__NULL__"

// NullID is the ID of NullToken in every target vocabulary.
const NullID = 0

// Vocabulary maps between word strings and dense integer IDs.
type Vocabulary struct {
	toID  map[string]int
	toStr []string
}

// NewVocabulary creates an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		toID: make(map[string]int),
	}
}

// NewTargetVocabulary creates a vocabulary with NullToken reserved at NullID.
func NewTargetVocabulary() *Vocabulary {
	v := NewVocabulary()
	v.Add(NullToken)
	return v
}

// Add adds a word to the vocabulary if not already present, returns its ID.
func (v *Vocabulary) Add(w string) int {
	if id, ok := v.toID[w]; ok {
		return id
	}
	id := len(v.toStr)
	v.toID[w] = id
	v.toStr = append(v.toStr, w)
	return id
}

// Get returns the ID for a word, or -1 if not found.
func (v *Vocabulary) Get(w string) int {
	if id, ok := v.toID[w]; ok {
		return id
	}
	return -1
}

// Word returns the word for an ID.
func (v *Vocabulary) Word(id int) string {
	return v.toStr[id]
}

// Size returns the number of entries.
func (v *Vocabulary) Size() int {
	return len(v.toStr)
}
