package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipd/clipd/internal/app"
)

// NewInstallCommand creates the install command registering clipd as a login item
func NewInstallCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install clipd as a login item so the monitor starts automatically",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.LoginItems == nil {
				return fmt.Errorf(ErrLoginItemsUnavailable)
			}

			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to locate clipd binary: %w", err)
			}

			result, err := container.LoginItems.Install(execPath)
			if err != nil {
				return fmt.Errorf("install failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Details)
			return nil
		},
	}
}

// NewUninstallCommand creates the uninstall command removing the login item
func NewUninstallCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the clipd login item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.LoginItems == nil {
				return fmt.Errorf(ErrLoginItemsUnavailable)
			}

			result, err := container.LoginItems.Uninstall()
			if err != nil {
				return fmt.Errorf("uninstall failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Details)
			return nil
		},
	}
}
