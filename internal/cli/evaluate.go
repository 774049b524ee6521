package cli

import (
	"fmt"
	"log/slog"

	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/ibm"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var (
		goldPath   string
		modelName  string
		sourcePath string
		targetPath string
	)

	cmd := &cobra.Command{
		Use:   "evaluate <alignments>",
		Short: "Score an alignment file against a gold alignment",
		Args:  cobra.ExactArgs(1),
		Example: `  # Model 2 output: NULL is position 0
  wordalign evaluate corpus.align --gold corpus.gold

  # Model 1 output: NULL is position l+1, so pass the corpus
  wordalign evaluate corpus.align --gold corpus.gold --model ibm1 --source corpus.es --target corpus.en`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := ibm.ParseModel(modelName)
			if err != nil {
				return err
			}

			slog.Info("Evaluating", "alignments", args[0], "gold", goldPath, "model", model)
			result, err := wordalign.Evaluate(args[0], goldPath, &wordalign.EvalConfig{
				Model:      model,
				SourcePath: sourcePath,
				TargetPath: targetPath,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Precision: %.1f%% (%d/%d links)\n", result.Precision*100, result.Correct, result.Predicted)
			fmt.Fprintf(out, "Recall:    %.1f%% (%d/%d links)\n", result.Recall*100, result.Correct, result.Gold)
			fmt.Fprintf(out, "F1:        %.1f%%\n", result.F1*100)
			fmt.Fprintf(out, "AER:       %.1f%%\n", result.AER*100)
			return nil
		},
	}

	cmd.Flags().StringVar(&goldPath, "gold", "", "Gold alignment file in the same format")
	cmd.Flags().StringVar(&modelName, "model", "ibm2", "Position numbering of the files: ibm1 (NULL = l+1) or ibm2 (NULL = 0)")
	cmd.Flags().StringVar(&sourcePath, "source", "", "Source side of the aligned corpus (ibm1 only)")
	cmd.Flags().StringVar(&targetPath, "target", "", "Target side of the aligned corpus (ibm1 only)")
	_ = cmd.MarkFlagRequired("gold")
	return cmd
}
