package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd, komut ağacını kurar. Her çalıştırma kendi app'ini taşır;
// testler aynı ağacı farklı config dosyalarıyla çalıştırabilir.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "grocer",
		Short: "grocer - recipe search and grocery list client",
		Long: `grocer talks to a grocery-planner API server.

Search recipes, add their ingredients to your active grocery list and keep
the list in sync across devices. When the server is unreachable the list is
kept in a local fallback store and pushed again on the next change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath, "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newSearchCmd(a),
		newRecipeCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newCheckCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newSaveCmd(a),
		newSavedCmd(a),
		newLoadCmd(a),
		newDeleteCmd(a),
		newSyncCmd(a),
	)

	return rootCmd
}

// action, komut gövdesini app açık olarak çalıştırır. Gövde hata dönse de
// bekleyen push'lar tamamlanır ve store kapanır.
func (a *app) action(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(); err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, args)
	}
}
