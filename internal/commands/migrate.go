package commands

import (
	"github.com/spf13/cobra"

	"github.com/wichananm65/estate-crm/internal/database"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			// openDB migrates on its own when AUTO_MIGRATE is set
			e.cfg.AutoMigrate = false
			if err := e.openDB(cmd.Context()); err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), e.db); err != nil {
				return err
			}
			e.lggr.Infow("migrations applied")
			return nil
		},
	}
}
