package cli

import (
	"fmt"
	"log/slog"

	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/ibm"
	"github.com/spf13/cobra"
)

func (c *CLI) newLinkCommand() *cobra.Command {
	var modelName string

	cmd := &cobra.Command{
		Use:   "link <paramfile> <source sentence> <target sentence>",
		Short: "Align a single sentence pair and print source-target links",
		Args:  cobra.ExactArgs(3),
		Example: `  wordalign link t.txt "casa azul" "blue house"
  wordalign link tq.txt "casa azul" "blue house" --model ibm2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := ibm.ParseModel(modelName)
			if err != nil {
				return err
			}
			al, err := wordalign.Load(args[0], model)
			if err != nil {
				return err
			}
			links, err := al.AlignSentence(args[1], args[2])
			if err != nil {
				return err
			}
			slog.Debug("Aligned", "model", al.Model(), "links", len(links))
			fmt.Fprintln(cmd.OutOrStdout(), wordalign.FormatLinks(links))
			return nil
		},
	}

	cmd.Flags().StringVar(&modelName, "model", "ibm1", "Model the parameter file was trained with: ibm1 or ibm2")
	return cmd
}
