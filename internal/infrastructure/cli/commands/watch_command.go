package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clipd/clipd/internal/app"
	"github.com/clipd/clipd/internal/infrastructure/web"
)

// NewWatchCommand creates the watch command running the monitor loop.
func NewWatchCommand(container *app.Container) *cobra.Command {
	var (
		interval time.Duration
		once     bool
		withWeb  bool
		webPort  int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the clipboard monitor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.MonitorService == nil {
				return fmt.Errorf(ErrMonitorUnavailable)
			}
			ctx := cmd.Context()
			container.MonitorService.IntervalOverride = interval

			if once {
				cfg, err := container.ConfigProvider.Load(ctx)
				if err != nil {
					return err
				}
				container.MonitorService.Tick(ctx, cfg)
				return nil
			}

			if container.ConfigWatcher != nil {
				if err := container.ConfigWatcher.Start(ctx); err == nil {
					defer container.ConfigWatcher.Stop()
				}
			}

			if withWeb {
				server := web.NewServer(container.HistoryStore, container.Logger, webPort)
				go func() {
					if err := server.ListenAndServe(ctx); err != nil {
						container.Logger.Warn("dashboard stopped", map[string]interface{}{"error": err.Error()})
					}
				}()
			}

			err := container.MonitorService.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Override poll interval (default from config)")
	cmd.Flags().BoolVar(&once, "once", false, "Sample the clipboard once and exit")
	cmd.Flags().BoolVar(&withWeb, "with-web", false, "Also serve the history dashboard")
	cmd.Flags().IntVar(&webPort, "port", 0, "Dashboard port (default 8001)")

	return cmd
}
