package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"idcache/internal/domain"
)

func newCmd() *cobra.Command {
	var (
		name     string
		location string
		encSpec  string
		argsJSON string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build an identity record and print it",
		Long: "new constructs an identity record from its fields and prints it as a\n" +
			"single-entry location-keyed object on stdout. Nothing is written to\n" +
			"disk; pipe the output into \"idcache merge\" to store it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := domain.ParseLocation([]byte(location))
			if err != nil {
				return err
			}
			enc, err := domain.ParseEncryptorSpec([]byte(encSpec))
			if err != nil {
				return err
			}
			var extra map[string]json.RawMessage
			if argsJSON != "" {
				if extra, err = domain.ParseAttrs([]byte(argsJSON)); err != nil {
					return err
				}
			}

			key, id, err := appCtx.Mutator.Create(name, loc, enc, extra)
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string]domain.Identity{key: id})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "identity name")
	cmd.Flags().StringVar(&location, "location", "", `location tuple as JSON, e.g. ["local",null,"mitzi"]`)
	cmd.Flags().StringVar(&encSpec, "encryptor", "", `encryptor spec as JSON, e.g. ["rotate",8]`)
	cmd.Flags().StringVar(&argsJSON, "args", "", "extra record fields as a JSON object")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("encryptor")
	return cmd
}
