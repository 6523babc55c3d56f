package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joacominatel/trident/internal/config"
	"github.com/joacominatel/trident/internal/output"
)

var (
	// Global flags
	verbose      bool
	outputFormat string

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "trident",
	Short: "Command-line companion for Jira, Confluence and Redshift",
	Long: `trident wraps three services behind one CLI:

  jira        issue tracking (worklist, create, comment, transitions)
  confluence  wiki pages (CRUD, search, comments, attachments)
  query       Redshift queries with schema context reporting

Credentials come from the environment (a .env file is honored), an
optional ~/.trident/config.yaml, and the OS keyring for secrets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg = zap.NewDevelopmentConfig()
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if outputFormat == "" {
			outputFormat = cfg.Output
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// printResult renders v in the selected output format.
func printResult(v any) error {
	switch outputFormat {
	case output.FormatJSON:
		return output.JSON(os.Stdout, v)
	default:
		return output.Text(os.Stdout, v)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: json or text")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(jiraCmd)
	rootCmd.AddCommand(confluenceCmd)
	rootCmd.AddCommand(secretCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
