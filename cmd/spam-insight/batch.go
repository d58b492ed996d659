package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/mikey/spam-insight/internal/batch"
	"github.com/spf13/cobra"
)

var (
	batchColumn  string
	batchWorkers int

	spamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	hamStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
)

type batchOutput struct {
	Summary     batch.Summary   `json:"summary"`
	Interrupted bool            `json:"interrupted"`
	Outcomes    []batch.Outcome `json:"outcomes"`
}

var batchCmd = &cobra.Command{
	Use:   "batch FILE.csv",
	Short: "Analyze every message of a CSV file in parallel",
	Long:  "Analyze the text column of a CSV file on a worker pool. Ctrl-C stops dispatching the remaining messages; messages already running finish.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()

		texts, err := batch.ReadTexts(f, batchColumn)
		if err != nil {
			return err
		}

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return container.Invoke(func(runner *batch.Runner) error {
			outcomes, runErr := runner.Run(ctx, texts)
			interrupted := runErr != nil && batch.IsInterrupted(runErr)
			if runErr != nil && !interrupted {
				return runErr
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(batchOutput{
					Summary:     batch.Summarize(outcomes),
					Interrupted: interrupted,
					Outcomes:    outcomes,
				})
			}

			printOutcomes(cmd, outcomes, interrupted)
			return nil
		})
	},
}

func printOutcomes(cmd *cobra.Command, outcomes []batch.Outcome, interrupted bool) {
	w := cmd.OutOrStdout()
	for _, o := range outcomes {
		switch o.Status {
		case batch.StatusAnalyzed:
			p := o.Result.Prediction
			label := hamStyle.Render(fmt.Sprintf("%-4s", "HAM"))
			if p.IsSpam() {
				label = spamStyle.Render(fmt.Sprintf("%-4s", "SPAM"))
			}
			fmt.Fprintf(w, "%5d  %s  %.4f  spam=%d ham=%d\n", o.Index, label, p.SpamProbability(),
				o.Result.Report.SpamIndicators, o.Result.Report.HamIndicators)
		case batch.StatusFailed:
			fmt.Fprintf(w, "%5d  %s  %s\n", o.Index, errStyle.Render("FAIL"), o.Error)
		default:
			fmt.Fprintf(w, "%5d  %s\n", o.Index, mutedStyle.Render("skipped"))
		}
	}

	s := batch.Summarize(outcomes)
	fmt.Fprintln(w, boldStyle.Render(fmt.Sprintf("\n%d messages: %d analyzed (%d spam, %d ham), %d failed, %d skipped",
		s.Total, s.Analyzed, s.Spam, s.Ham, s.Failed, s.Skipped)))
	if interrupted {
		fmt.Fprintln(w, mutedStyle.Render("Interrupted: remaining messages were not analyzed"))
	}
}

func init() {
	batchCmd.Flags().StringVar(&batchColumn, "column", batch.TextColumn, "CSV column holding the message text")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", batch.DefaultWorkers, "Number of messages analyzed in parallel")
	rootCmd.AddCommand(batchCmd)
}
