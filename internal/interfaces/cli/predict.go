package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/app"
)

func newPredictCommand(opts *rootOptions) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify one candidate transit signal",
		Long: `Classify one candidate transit signal from a JSON object of raw
archive fields (koi_period, koi_prad, koi_teq, ...).  Missing fields get the
documented defaults.  Reads from --file, or stdin when --file is "-".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := readInput(inputPath)
			if err != nil {
				return err
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.buildLogger(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			application, err := app.Build(ctx, cfg, logger)
			if err != nil {
				return err
			}
			application.WarmUp(ctx)

			result, err := application.Engine.Infer(ctx, input)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "file", "f", "-", `JSON input file ("-" for stdin)`)
	return cmd
}

func readInput(path string) (map[string]float64, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	input := make(map[string]float64)
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("input must be a JSON object of numeric fields: %w", err)
	}
	return input, nil
}
