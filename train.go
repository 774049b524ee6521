package wordalign

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/happyhackingspace/wordalign/ibm"
	"github.com/happyhackingspace/wordalign/internal/corpus"
)

// TrainConfig holds configuration for training.
type TrainConfig struct {
	Model  ibm.Model // defaults to ibm.Model1
	Rounds int       // EM rounds, defaults to 5

	// Model 2 only. InitPath names a Model 1 parameter file used as the
	// starting translation table. Otherwise, when Model1Rounds is positive,
	// that many Model 1 rounds are run first to produce it.
	InitPath     string
	Model1Rounds int

	// InMemory reads the corpus once and keeps it in memory instead of
	// rereading both files on every pass.
	InMemory bool

	// OnRound is called after every EM round of the main model.
	OnRound func(round int, logLikelihood float64)
}

// Train estimates alignment parameters from two line-aligned files.
func Train(sourcePath, targetPath string, config *TrainConfig) (*Aligner, error) {
	cfg := TrainConfig{Model: ibm.Model1, Rounds: ibm.DefaultTrainerConfig().Rounds}
	if config != nil {
		cfg = *config
		if cfg.Model == 0 {
			cfg.Model = ibm.Model1
		}
		if cfg.Rounds == 0 {
			cfg.Rounds = ibm.DefaultTrainerConfig().Rounds
		}
	}

	var c ibm.Corpus
	if cfg.InMemory {
		m, err := corpus.Load(sourcePath, targetPath)
		if err != nil {
			return nil, fmt.Errorf("wordalign: %w", err)
		}
		slog.Debug("Corpus loaded", "pairs", len(m))
		c = m
	} else {
		f, err := corpus.Open(sourcePath, targetPath)
		if err != nil {
			return nil, fmt.Errorf("wordalign: %w", err)
		}
		defer func() { _ = f.Close() }()
		c = f
	}

	p, err := TrainCorpus(c, cfg)
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	return New(p), nil
}

// TrainCorpus estimates alignment parameters from any corpus. Zero
// fields of config are not defaulted.
func TrainCorpus(c ibm.Corpus, config TrainConfig) (*ibm.Params, error) {
	seed, err := modelSeed(c, config)
	if err != nil {
		return nil, err
	}

	p, err := ibm.Initialize(c, config.Model, seed)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	slog.Debug("Parameters initialized", "model", config.Model, "t_entries", p.T.Len(), "source_vocab", p.Source.Size(), "target_vocab", p.Target.Size())

	tc := ibm.DefaultTrainerConfig()
	tc.Rounds = config.Rounds
	tc.OnRound = config.OnRound
	if err := ibm.Train(c, p, tc); err != nil {
		return nil, err
	}
	return p, nil
}

// modelSeed returns the starting translation table for Model 2, or nil.
func modelSeed(c ibm.Corpus, config TrainConfig) (*ibm.Params, error) {
	if config.Model != ibm.Model2 {
		return nil, nil
	}
	if config.InitPath != "" {
		f, err := os.Open(config.InitPath)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		seed, err := ibm.ReadParams(f, ibm.Model1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.InitPath, err)
		}
		slog.Debug("Loaded Model 1 seed", "path", config.InitPath, "t_entries", seed.T.Len())
		return seed, nil
	}
	if config.Model1Rounds > 0 {
		slog.Debug("Training Model 1 seed", "rounds", config.Model1Rounds)
		return TrainCorpus(c, TrainConfig{Model: ibm.Model1, Rounds: config.Model1Rounds})
	}
	return nil, nil
}
