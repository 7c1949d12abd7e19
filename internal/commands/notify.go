package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wichananm65/estate-crm/internal/server"
)

func NotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Refresh the notifications of every profile once",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.openDB(cmd.Context()); err != nil {
				return err
			}
			if err := e.openCache(cmd.Context()); err != nil {
				return err
			}

			srv := server.New(server.Options{Config: e.cfg, DB: e.db, Cache: e.cache, Logger: e.lggr})
			urgent := srv.Refresher(e.cfg.NotificationInterval).RunOnce(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%d urgent notifications raised\n", urgent)
			return nil
		},
	}
}
