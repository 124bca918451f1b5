package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"idcache/internal/cache"
)

func mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge [file]",
		Short: "Merge identity JSON from stdin into a cache file",
		Long: "merge reads a location-keyed JSON object from stdin (for example the\n" +
			"output of \"idcache new\") and folds it into the named cache file.\n" +
			"Entries with a matching location replace the existing record; all\n" +
			"other entries are preserved.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			incoming, err := cache.Decode(data)
			if err != nil {
				return err
			}
			if err := appCtx.Mutator.Merge(args[0], incoming); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d entries into %s\n", len(incoming), args[0])
			return nil
		},
	}
}
