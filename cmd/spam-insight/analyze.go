package main

import (
	"context"
	"encoding/json"

	"github.com/mikey/spam-insight/internal/adapters/filter"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/ports"
	"github.com/spf13/cobra"
)

var analyzeEmail bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE]",
	Short: "Classify a message and explain the verdict",
	Long:  "Classify the message in FILE (or stdin) and print the annotated text, verdict, indicators and features.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		email := &core.Email{Body: raw}
		if analyzeEmail {
			email, err = filter.ParseEmail([]byte(raw))
			if err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if jsonOutput {
			return container.Invoke(func(svc *core.AnalysisService) error {
				result, err := svc.AnalyzeEmail(ctx, email)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			})
		}

		return container.Invoke(func(f ports.EmailFilter) error {
			_, err := f.ProcessEmail(ctx, email)
			return err
		})
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeEmail, "email", false, "Parse the input as an RFC 5322 email (headers, MIME parts)")
	rootCmd.AddCommand(analyzeCmd)
}
