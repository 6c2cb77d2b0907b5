package cli

import (
	"github.com/spf13/cobra"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/corpus"
)

func newCorpusCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect the reference corpus",
	}
	cmd.AddCommand(newCorpusStatsCommand(opts), newCorpusListCommand(opts))
	return cmd
}

func newCorpusStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the reference corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := openCorpus(opts)
			if err != nil {
				return err
			}
			stats, err := ref.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
}

func newCorpusListCommand(opts *rootOptions) *cobra.Command {
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List named corpus rows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := openCorpus(opts)
			if err != nil {
				return err
			}
			page, err := ref.Page(cmd.Context(), offset, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "number of rows to skip")
	cmd.Flags().IntVar(&limit, "limit", 25, "maximum rows to print")
	return cmd
}

func openCorpus(opts *rootOptions) (*corpus.Corpus, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	source := corpus.NewCSVSource(cfg.Corpus.Path, cfg.Corpus.NameColumn)
	return corpus.New(source, nil, nil), nil
}
