package main

import (
	"encoding/json"
	"fmt"

	"github.com/mikey/spam-insight/internal/annotate"
	"github.com/mikey/spam-insight/internal/config"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/spf13/cobra"
)

type annotateOutput struct {
	Segments  []annotate.Segment `json:"segments"`
	SpamWords int                `json:"spam_words"`
	HamWords  int                `json:"ham_words"`
}

var annotateCmd = &cobra.Command{
	Use:   "annotate [FILE]",
	Short: "Highlight spam and ham reference words without classifying",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		return container.Invoke(func(cfg *config.Config, svc *core.AnalysisService) error {
			m := svc.Annotate(raw)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(annotateOutput{
					Segments:  m.Segments,
					SpamWords: m.Count(annotate.TagSpam),
					HamWords:  m.Count(annotate.TagHam),
				})
			}

			r, err := annotate.NewRenderer(cfg.GetString("cli.renderer"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Render(m))
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(
				fmt.Sprintf("%d spam words, %d ham words", m.Count(annotate.TagSpam), m.Count(annotate.TagHam))))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}
