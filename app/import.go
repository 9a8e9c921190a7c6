package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/folio-cms/folio/internal/content"
)

func init() { //nolint: gochecknoinits
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "YAML content file")
	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(importCmd)
}

var (
	importFile string

	importCmd = &cobra.Command{
		Use:   "import",
		Short: "Import portfolio content and settings from a YAML file",
		Long: `Import adds every record of the file in one transaction. Settings are upserted,
records are always added, so importing the same file twice duplicates them.`,
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(importFile)
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := content.ParseDocument(f)
			if err != nil {
				return fmt.Errorf("%s: %w", importFile, err)
			}

			conn, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			result, err := content.Import(cmd.Context(), conn, doc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, k := range result.Keys() {
				_, _ = fmt.Fprintf(out, "%-24s %d\n", k, result[k])
			}

			log.Info().Str("file", importFile).Int("rows", result.Total()).Msg("content imported")

			return nil
		},
	}
)
