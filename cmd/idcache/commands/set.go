package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"idcache/internal/domain"
)

func setCmd() *cobra.Command {
	var argsJSON string

	cmd := &cobra.Command{
		Use:   "set [name]",
		Short: "Update attributes of an identity everywhere it occurs",
		Long: "set shallow-merges the given attributes into every record with the\n" +
			"given name, in every resolved cache file that contains one. Unlike\n" +
			"rm, a name present in several files is updated in all of them.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := domain.ParseAttrs([]byte(argsJSON))
			if err != nil {
				return err
			}
			modified, err := appCtx.Mutator.Set(appCtx.Source, args[0], attrs)
			if err != nil {
				return err
			}
			for _, path := range modified {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s in %s\n", args[0], path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&argsJSON, "args", "", "attribute updates as a JSON object")
	_ = cmd.MarkFlagRequired("args")
	return cmd
}
