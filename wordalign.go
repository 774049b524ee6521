// Package wordalign estimates word alignments between sentence-aligned
// texts with IBM Model 1 and Model 2.
//
// Train estimates translation (and distortion) probabilities with EM;
// the returned Aligner finds the most likely alignment of each pair.
//
//	a, _ := wordalign.Train("corpus.es", "corpus.en", nil)
//	links, _ := a.AlignSentence("casa azul", "blue house")
//	fmt.Println(links) // target position per source word, 0 = NULL
package wordalign

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/happyhackingspace/wordalign/ibm"
	"github.com/happyhackingspace/wordalign/internal/corpus"
)

// Aligner wraps trained alignment parameters.
type Aligner struct {
	params *ibm.Params
}

// New wraps existing parameters.
func New(params *ibm.Params) *Aligner {
	return &Aligner{params: params}
}

// Load reads a parameter file written for the given model.
func Load(path string, model ibm.Model) (*Aligner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	defer func() { _ = f.Close() }()

	p, err := ibm.ReadParams(f, model)
	if err != nil {
		return nil, fmt.Errorf("wordalign: %s: %w", path, err)
	}
	return New(p), nil
}

// Params returns the underlying parameters.
func (a *Aligner) Params() *ibm.Params {
	return a.params
}

// Model returns the alignment model of the parameters.
func (a *Aligner) Model() ibm.Model {
	return a.params.Model
}

// Save writes the parameters to path, or to stdout when path is "-".
func (a *Aligner) Save(path string) error {
	if a.params == nil {
		return fmt.Errorf("wordalign: aligner not initialized")
	}
	if path == "-" {
		return a.WriteParams(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wordalign: %w", err)
	}
	if err := a.WriteParams(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("wordalign: %w", err)
	}
	return nil
}

// WriteParams writes the parameters in the text parameter format.
func (a *Aligner) WriteParams(w io.Writer) error {
	if err := ibm.WriteParams(w, a.params); err != nil {
		return fmt.Errorf("wordalign: %w", err)
	}
	return nil
}

// AlignSentence aligns one whitespace-tokenized sentence pair and returns
// the target position for every source word.
func (a *Aligner) AlignSentence(source, target string) ([]int, error) {
	if a.params == nil {
		return nil, fmt.Errorf("wordalign: aligner not initialized")
	}
	pair := corpus.NewPair(source, target)
	links, err := a.params.Align(pair.Source, pair.Target)
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	return links, nil
}

// AlignFiles aligns every line pair of two line-aligned files and writes
// "<sentence> <target> <source>" lines to w.
func (a *Aligner) AlignFiles(sourcePath, targetPath string, w io.Writer) error {
	if a.params == nil {
		return fmt.Errorf("wordalign: aligner not initialized")
	}
	c, err := corpus.Open(sourcePath, targetPath)
	if err != nil {
		return fmt.Errorf("wordalign: %w", err)
	}
	defer func() { _ = c.Close() }()

	if err := ibm.AlignCorpus(c, a.params, w); err != nil {
		return fmt.Errorf("wordalign: %w", err)
	}
	return nil
}

// FormatLinks renders links as "source-target" pairs, e.g. "1-2 2-1".
func FormatLinks(links []int) string {
	parts := make([]string, len(links))
	for i, j := range links {
		parts[i] = fmt.Sprintf("%d-%d", i+1, j)
	}
	return strings.Join(parts, " ")
}
