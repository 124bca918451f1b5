package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"idcache/internal/domain"
	"idcache/internal/encryptor"
	"idcache/internal/services/mutate"
	"idcache/internal/services/resolve"
)

func detailsCmd() *cobra.Command {
	var (
		export     bool
		publicOnly bool
	)

	cmd := &cobra.Command{
		Use:   "details [name]...",
		Short: "Show full records for one or more identities",
		Long: "details prints the full stored record for each named identity.\n" +
			"With -e the records are emitted as a single location-keyed object;\n" +
			"when two cache files hold the same location key, the later file's\n" +
			"record wins and a warning is logged.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := appCtx.Resolver.Resolve(appCtx.Source, args)
			if err != nil {
				return err
			}
			for _, name := range args {
				if len(res[name]) == 0 {
					return errors.Wrap(mutate.ErrNoIdentity, name)
				}
			}

			matches, err := collectMatches(res, publicOnly)
			if err != nil {
				return err
			}

			if export {
				return writeJSON(cmd, exportObject(appCtx.Log, matches))
			}

			records := make([]domain.Identity, 0, len(matches))
			for _, m := range matches {
				records = append(records, m.Identity)
			}
			return writeJSON(cmd, records)
		},
	}

	cmd.Flags().BoolVarP(&export, "export", "e", false, "print a single location-keyed object")
	cmd.Flags().BoolVarP(&publicOnly, "public", "p", false, "replace encryptors with their public counterparts")
	return cmd
}

// exportObject keys the matches by location. Matches from different files
// can share a key; the later one wins and the collision is logged.
func exportObject(log *zap.Logger, matches []resolve.Match) map[string]domain.Identity {
	obj := make(map[string]domain.Identity, len(matches))
	seen := make(map[string]string, len(matches))
	for _, m := range matches {
		if prev, ok := seen[m.Key]; ok {
			log.Warn("export key collision, keeping later record",
				zap.String("key", m.Key),
				zap.String("dropped", prev),
				zap.String("kept", m.Path))
		}
		seen[m.Key] = m.Path
		obj[m.Key] = m.Identity
	}
	return obj
}

// collectMatches flattens the result sorted by name, optionally swapping
// each record's encryptor for its derived public form. Derivation works on
// copies; the source files are never touched.
func collectMatches(res resolve.Result, publicOnly bool) ([]resolve.Match, error) {
	var matches []resolve.Match
	for _, name := range res.Names() {
		for _, m := range res[name] {
			if publicOnly {
				pub, err := encryptor.DerivePublic(m.Identity.Encryptor)
				if err != nil {
					return nil, errors.Wrapf(err, "derive public encryptor for %q", name)
				}
				id := m.Identity.Clone()
				id.Encryptor = pub
				m.Identity = id
			}
			matches = append(matches, m)
		}
	}
	return matches, nil
}
