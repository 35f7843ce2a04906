package activity

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marakke/activity-app/internal/config"
	"github.com/Marakke/activity-app/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and apply schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(_ *store.Store, cfg config.Config, _ *zap.Logger) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", cfg.DBPath)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
