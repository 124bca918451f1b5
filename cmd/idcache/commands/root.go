package commands

import (
	"github.com/spf13/cobra"

	"idcache/internal/app"
)

var (
	cacheSource string
	configFile  string
	verbose     bool

	appCtx *app.App
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "idcache",
		Short: "Manage identity cache files",
		Long: "idcache manages a local store of identity records (name, network\n" +
			"location, encryptor key material) kept in JSON cache files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(app.Config{
				CacheSource: cacheSource,
				ConfigFile:  configFile,
				Verbose:     verbose,
			})
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cacheSource, "cache-source", "", "read this cache file instead of the default list")
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.idcache/config.toml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		listCmd(),
		detailsCmd(),
		newCmd(),
		newInteractiveCmd(),
		mergeCmd(),
		setCmd(),
		rmCmd(),
	)
	return root
}
