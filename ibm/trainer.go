package ibm

import (
	"fmt"
	"log/slog"
	"time"
)

// TrainerConfig holds EM training settings.
type TrainerConfig struct {
	Rounds int // number of full E-step/M-step sweeps

	// OnRound, if set, is called after every round with the 1-based round
	// number and the corpus log-likelihood measured during its E-step.
	OnRound func(round int, logLikelihood float64)
}

// DefaultTrainerConfig returns the default training config: five rounds.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{Rounds: 5}
}

// Train runs exactly config.Rounds EM rounds over the corpus, updating p
// in place. There is no convergence test. Any corpus error aborts the run.
func Train(c Corpus, p *Params, config TrainerConfig) error {
	if config.Rounds < 1 {
		return fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	p.ResetCounts()
	for round := 1; round <= config.Rounds; round++ {
		start := time.Now()
		ll, err := sweep(c, p)
		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
		p.Normalize()

		slog.Debug("EM round", "model", p.Model, "round", round, "log_likelihood", ll, "duration", time.Since(start))
		if config.OnRound != nil {
			config.OnRound(round, ll)
		}
	}
	return nil
}

// sweep accumulates expected counts over the whole corpus.
func sweep(c Corpus, p *Params) (float64, error) {
	total := 0.0
	err := c.Each(func(source, target []string) error {
		ll, err := p.Accumulate(p.Encode(source, target, true))
		total += ll
		return err
	})
	return total, err
}
