package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"idcache/internal/services/resolve"
)

func listCmd() *cobra.Command {
	var byFile bool

	cmd := &cobra.Command{
		Use:   "list [name]",
		Short: "List identities across the resolved cache files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := appCtx.Resolver.Resolve(appCtx.Source, args)
			if err != nil {
				return err
			}
			if byFile {
				printByFile(cmd, res)
				return nil
			}
			printFlat(cmd, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byFile, "by-file", false, "group output by cache file")
	return cmd
}

// printByFile emits one header per cache file that contains at least one
// match, followed by that file's matches. Files without matches stay silent.
func printByFile(cmd *cobra.Command, res resolve.Result) {
	byPath := make(map[string][]resolve.Match)
	for _, name := range res.Names() {
		for _, m := range res[name] {
			byPath[m.Path] = append(byPath[m.Path], m)
		}
	}
	out := cmd.OutOrStdout()
	for _, path := range appCtx.Source.Paths() {
		matches := byPath[path]
		if len(matches) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s:\n", path)
		for _, m := range matches {
			fmt.Fprintf(out, "  %s  %s\n", m.Identity.Name, m.Key)
		}
	}
}

func printFlat(cmd *cobra.Command, res resolve.Result) {
	headers := []string{"NAME", "LOCATION", "SCHEME", "SOURCE"}
	var rows [][]string
	for _, name := range res.Names() {
		for _, m := range res[name] {
			scheme, err := m.Identity.Encryptor.Scheme()
			if err != nil {
				scheme = "?"
			}
			rows = append(rows, []string{name, m.Key, scheme, m.Path})
		}
	}

	out := cmd.OutOrStdout()
	if stdoutIsTerminal() {
		fmt.Fprintln(out, renderTable(headers, rows))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", row[0], row[1], row[2], row[3])
	}
}
