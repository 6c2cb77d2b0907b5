// Package cli implements the exoai command tree: serving the API, one-shot
// predictions, and reference-corpus inspection.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/config"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
)

// Build metadata, overwritten by cmd/exoai at startup.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

// NewRootCommand creates the exoai root command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "exoai",
		Short:         "Exoplanet transit-signal classification service and tools",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to YAML configuration file (empty: environment variables only)")

	cmd.AddCommand(
		newServeCommand(opts),
		newPredictCommand(opts),
		newCorpusCommand(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return config.LoadFromEnv()
	}
	return config.Load(o.configPath)
}

func (o *rootOptions) buildLogger(cfg *config.Config) (logging.Logger, error) {
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	logging.SetDefault(logger)
	return logger, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
