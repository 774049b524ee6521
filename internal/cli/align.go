package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/ibm"
	"github.com/spf13/cobra"
)

func (c *CLI) newAlignCommand() *cobra.Command {
	var (
		sourcePath string
		targetPath string
		modelName  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "align <paramfile>",
		Short: "Write the most likely word alignment of every sentence pair",
		Args:  cobra.ExactArgs(1),
		Example: `  # Align with Model 1 parameters, print to stdout
  wordalign align t.txt --source corpus.es --target corpus.en

  # Align with Model 2 parameters into a file
  wordalign align tq.txt --model ibm2 --source corpus.es --target corpus.en -o corpus.align`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := ibm.ParseModel(modelName)
			if err != nil {
				return err
			}

			start := time.Now()
			al, err := wordalign.Load(args[0], model)
			if err != nil {
				return err
			}
			slog.Debug("Parameters loaded", "path", args[0], "model", model, "t_entries", al.Params().T.Len(), "duration", time.Since(start))

			start = time.Now()
			if outputPath == "" || outputPath == "-" {
				if err := al.AlignFiles(sourcePath, targetPath, cmd.OutOrStdout()); err != nil {
					return err
				}
				slog.Debug("Alignment completed", "duration", time.Since(start))
				return nil
			}
			if err := alignToFile(al, sourcePath, targetPath, outputPath); err != nil {
				return err
			}
			slog.Debug("Alignment completed", "duration", time.Since(start))
			slog.Info("Alignment saved", "path", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "Source-language sentence file, one sentence per line")
	cmd.Flags().StringVar(&targetPath, "target", "", "Target-language sentence file, line-aligned with --source")
	cmd.Flags().StringVar(&modelName, "model", "ibm1", "Model the parameter file was trained with: ibm1 or ibm2")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

// alignToFile writes the alignment to path. On failure the partial file
// is removed.
func alignToFile(al *wordalign.Aligner, sourcePath, targetPath, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
		if err != nil {
			err = errors.Join(err, ignoreNotExist(os.Remove(path)))
		}
	}()
	return al.AlignFiles(sourcePath, targetPath, f)
}

func ignoreNotExist(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
