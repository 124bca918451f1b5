package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func rmCmd() *cobra.Command {
	var allSources bool

	cmd := &cobra.Command{
		Use:   "rm [name]...",
		Short: "Remove identities from the cache files",
		Long: "rm deletes every record with the given names. A name that resolves to\n" +
			"more than one cache file aborts before anything is written unless -A\n" +
			"is set or an explicit --cache-source narrows the search. Names with\n" +
			"no match are reported, not treated as errors.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := appCtx.Mutator.Remove(appCtx.Source, args, allSources)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range args {
				if paths, ok := report.Removed[name]; ok {
					fmt.Fprintf(out, "Removed %s from %s\n", name, strings.Join(paths, ", "))
					continue
				}
				fmt.Fprintf(out, "%s: not found in any cache file\n", name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&allSources, "all-sources", "A", false, "remove from every cache file containing the name")
	return cmd
}
