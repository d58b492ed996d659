package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/di"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
)

// Version is set via ldflags at build time
var Version = "dev"

var (
	configFile string
	verbose    bool
	jsonLog    bool
	jsonOutput bool
	renderer   string

	provider  string
	modelPath string
	spamWords string
	hamWords  string
	threshold float64

	container *dig.Container
)

var rootCmd = &cobra.Command{
	Use:           "spam-insight",
	Short:         "spam-insight - explain spam and ham verdicts",
	Long:          "Classify messages as spam or ham and show the features, indicator patterns and reference words behind each verdict.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "version":
			return nil
		}

		var err error
		container, err = di.BuildCLIContainer(di.CLIOptions{
			ConfigFile: configFile,
			Verbose:    verbose,
			JSONLog:    jsonLog,
			Renderer:   renderer,
			Overrides:  overrides(cmd),
		})
		if err != nil {
			return fmt.Errorf("build container: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "spam-insight version %s\n", Version)
	},
}

// overrides maps the flags set on the command line to configuration keys
func overrides(cmd *cobra.Command) map[string]any {
	out := make(map[string]any)
	flags := cmd.Flags()
	if flags.Changed("provider") {
		out["classifier.provider"] = provider
	}
	if flags.Changed("model") {
		out["classifier.model_path"] = modelPath
	}
	if flags.Changed("threshold") {
		out["classifier.threshold"] = threshold
	}
	if flags.Changed("spam-words") {
		out["lexicon.spam_words_path"] = spamWords
	}
	if flags.Changed("ham-words") {
		out["lexicon.ham_words_path"] = hamWords
	}
	if flags.Changed("workers") {
		out["batch.workers"] = batchWorkers
	}
	return out
}

// readInput reads the file named by args, or stdin when there is none or
// it is "-"
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", core.ErrEmptyMessage
	}
	return string(data), nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default: search /etc/spam-insight, $HOME/.spam-insight, ./configs, .)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging and full feature output")
	pf.BoolVar(&jsonLog, "json-log", false, "Write logs as JSON")
	pf.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	pf.StringVar(&renderer, "renderer", "", "Annotation renderer: terminal, plain or html")
	pf.StringVar(&provider, "provider", "", "Classifier: naive_bayes, openai, gemini or bedrock")
	pf.StringVar(&modelPath, "model", "", "Naive Bayes model file")
	pf.Float64Var(&threshold, "threshold", 0.5, "Spam probability threshold for LLM classifiers")
	pf.StringVar(&spamWords, "spam-words", "", "Spam reference word list (CSV with a word column)")
	pf.StringVar(&hamWords, "ham-words", "", "Ham reference word list (CSV with a word column)")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
