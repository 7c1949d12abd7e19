package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wichananm65/estate-crm/internal/server"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the notification refresher",
		RunE: func(cmd *cobra.Command, args []string) error {
			memory, _ := cmd.Flags().GetBool("memory")
			addr, _ := cmd.Flags().GetString("addr")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()
			if addr != "" {
				e.cfg.Addr = addr
			}

			if !memory {
				if err := e.openDB(ctx); err != nil {
					return err
				}
			}
			if err := e.openCache(ctx); err != nil {
				return err
			}

			srv := server.New(server.Options{Config: e.cfg, DB: e.db, Cache: e.cache, Logger: e.lggr})
			go srv.Refresher(e.cfg.NotificationInterval).Run(ctx)

			errc := make(chan error, 1)
			go func() {
				e.lggr.Infow("listening", "addr", e.cfg.Addr, "memory", memory)
				errc <- srv.App.Listen(e.cfg.Addr)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			e.lggr.Infow("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address, overrides ADDR")
	cmd.Flags().Bool("memory", false, "Keep records in memory instead of Postgres")

	return cmd
}
