package wordalign

import (
	"fmt"
	"os"

	"github.com/happyhackingspace/wordalign/ibm"
	"github.com/happyhackingspace/wordalign/internal/corpus"
)

// EvalResult holds alignment quality against a reference alignment.
// Links to NULL are ignored on both sides.
type EvalResult struct {
	Precision float64
	Recall    float64
	F1        float64
	AER       float64 // alignment error rate, every gold link counted as sure
	Correct   int
	Predicted int
	Gold      int
}

// EvalConfig describes how NULL links are numbered in the files being
// evaluated.
type EvalConfig struct {
	// Model is the numbering of both files. With ibm.Model2 (the default)
	// NULL is target position 0. With ibm.Model1 NULL is position l+1,
	// so the corpus is needed to know l for every sentence.
	Model      ibm.Model
	SourcePath string
	TargetPath string
}

type link struct {
	sentence, target, source int
}

// Evaluate compares a predicted alignment file with a gold one. Both use
// the "<sentence> <target> <source>" line format. A nil config means
// Model 2 numbering.
func Evaluate(predictedPath, goldPath string, config *EvalConfig) (*EvalResult, error) {
	isNull, err := nullLinks(config)
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	predicted, err := readLinks(predictedPath, isNull)
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	gold, err := readLinks(goldPath, isNull)
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	return scoreLinks(predicted, gold), nil
}

// nullLinks returns a function reporting whether an alignment links a
// source word to NULL. Position 0 never names a target word.
func nullLinks(config *EvalConfig) (func(ibm.Alignment) (bool, error), error) {
	if config == nil || config.Model != ibm.Model1 {
		return func(a ibm.Alignment) (bool, error) { return a.Target == 0, nil }, nil
	}
	if config.SourcePath == "" || config.TargetPath == "" {
		return nil, fmt.Errorf("model 1 evaluation needs the aligned corpus to locate NULL")
	}
	m, err := corpus.Load(config.SourcePath, config.TargetPath)
	if err != nil {
		return nil, err
	}
	return func(a ibm.Alignment) (bool, error) {
		if a.Sentence < 1 || a.Sentence > len(m) {
			return false, fmt.Errorf("sentence %d not in corpus of %d pairs", a.Sentence, len(m))
		}
		return a.Target == 0 || a.Target == len(m[a.Sentence-1].Target)+1, nil
	}, nil
}

func scoreLinks(predicted, gold map[link]bool) *EvalResult {
	result := &EvalResult{Predicted: len(predicted), Gold: len(gold)}
	for l := range predicted {
		if gold[l] {
			result.Correct++
		}
	}
	if result.Predicted > 0 {
		result.Precision = float64(result.Correct) / float64(result.Predicted)
	}
	if result.Gold > 0 {
		result.Recall = float64(result.Correct) / float64(result.Gold)
	}
	if result.Precision+result.Recall > 0 {
		result.F1 = 2 * result.Precision * result.Recall / (result.Precision + result.Recall)
	}
	if total := result.Predicted + result.Gold; total > 0 {
		result.AER = 1 - 2*float64(result.Correct)/float64(total)
	}
	return result
}

func readLinks(path string, isNull func(ibm.Alignment) (bool, error)) (map[link]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	alignments, err := ibm.ReadAlignments(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	links := make(map[link]bool, len(alignments))
	for _, a := range alignments {
		null, err := isNull(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if null {
			continue
		}
		links[link{a.Sentence, a.Target, a.Source}] = true
	}
	return links, nil
}
