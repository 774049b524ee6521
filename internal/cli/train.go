package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/ibm"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var (
		sourcePath  string
		targetPath  string
		modelName   string
		rounds      int
		initPath    string
		model1Round int
		progress    bool
		inMemory    bool
	)

	cmd := &cobra.Command{
		Use:   "train <paramfile>",
		Short: "Estimate alignment parameters from a parallel corpus with EM",
		Args:  cobra.ExactArgs(1),
		Example: `  wordalign train t.txt --source corpus.es --target corpus.en
  wordalign train tq.txt --source corpus.es --target corpus.en --model ibm2 --init t.txt
  wordalign train tq.txt --source corpus.es --target corpus.en --model ibm2 --ibm1-rounds 5
  wordalign train - --source corpus.es --target corpus.en --rounds 10 --progress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := ibm.ParseModel(modelName)
			if err != nil {
				return err
			}
			if rounds < 1 {
				return fmt.Errorf("--rounds must be positive, got %d", rounds)
			}
			if model == ibm.Model1 && (initPath != "" || model1Round > 0) {
				return fmt.Errorf("--init and --ibm1-rounds only apply to --model ibm2")
			}
			paramPath := args[0]

			config := &wordalign.TrainConfig{
				Model:        model,
				Rounds:       rounds,
				InitPath:     initPath,
				Model1Rounds: model1Round,
				InMemory:     inMemory,
			}
			if progress && !c.silent {
				bar := progressbar.NewOptions(rounds,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("EM rounds"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				config.OnRound = func(round int, ll float64) {
					_ = bar.Add(1)
				}
				defer func() { _ = bar.Finish() }()
			}

			slog.Info("Training", "model", model, "rounds", rounds, "source", sourcePath, "target", targetPath, "output", paramPath)
			start := time.Now()
			al, err := wordalign.Train(sourcePath, targetPath, config)
			if err != nil {
				return err
			}
			slog.Debug("Training completed", "duration", time.Since(start))
			if err := al.Save(paramPath); err != nil {
				return err
			}
			slog.Info("Parameters saved", "path", paramPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "Source-language sentence file, one sentence per line")
	cmd.Flags().StringVar(&targetPath, "target", "", "Target-language sentence file, line-aligned with --source")
	cmd.Flags().StringVar(&modelName, "model", "ibm1", "Alignment model: ibm1 or ibm2")
	cmd.Flags().IntVar(&rounds, "rounds", ibm.DefaultTrainerConfig().Rounds, "Number of EM rounds")
	cmd.Flags().StringVar(&initPath, "init", "", "Model 1 parameter file to seed t(f|e) for ibm2")
	cmd.Flags().IntVar(&model1Round, "ibm1-rounds", 0, "Model 1 rounds to run first to seed t(f|e) for ibm2")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar")
	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "Load the corpus into memory instead of rereading it every round")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
