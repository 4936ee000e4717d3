package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/clipd/clipd/internal/app"
	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/infrastructure/cli/helpers"
)

// NewModulesCommand creates the modules command with all subcommands
func NewModulesCommand(container *app.Container) *cobra.Command {
	modulesCmd := &cobra.Command{
		Use:   "modules",
		Short: "Manage content processors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProcessors(cmd, container)
		},
	}

	modulesCmd.AddCommand(
		newModulesListCommand(container),
		newModulesEnableCommand(container),
		newModulesDisableCommand(container),
	)

	return modulesCmd
}

// newModulesListCommand creates the 'modules list' subcommand
func newModulesListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered processors and their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProcessors(cmd, container)
		},
	}
}

// newModulesEnableCommand creates the 'modules enable' subcommand
func newModulesEnableCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "enable <name>",
		Short: "Enable a processor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleProcessor(cmd, container, args[0], true)
		},
	}
}

// newModulesDisableCommand creates the 'modules disable' subcommand
func newModulesDisableCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <name>",
		Short: "Disable a processor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleProcessor(cmd, container, args[0], false)
		},
	}
}

// listProcessors prints the registered processors with their enabled state
func listProcessors(cmd *cobra.Command, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	infos := container.Dispatcher.Processors(cfg)
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No processors registered.")
		return nil
	}

	for _, info := range infos {
		displayProcessorInfo(cmd.OutOrStdout(), info)
	}
	return nil
}

func displayProcessorInfo(out io.Writer, info domain.ProcessorInfo) {
	status := "enabled"
	if !info.Enabled {
		status = "disabled"
	}
	fmt.Fprintf(out, "%-16s %-8s %s\n", info.Name, status, info.Description)
}

// toggleProcessor validates the name against the registry, flips its state
// in the configuration, and persists the result.
func toggleProcessor(cmd *cobra.Command, container *app.Container, name string, enable bool) error {
	cfg, err := container.ConfigProvider.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if !processorRegistered(container, cfg, name) {
		return fmt.Errorf("unknown processor %q, see 'clipd modules list'", name)
	}

	if enable {
		err = cfg.EnableProcessor(name)
	} else {
		err = cfg.DisableProcessor(name)
	}
	if err != nil {
		return err
	}

	if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
		return err
	}

	verb := "enabled"
	if !enable {
		verb = "disabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Processor %s %s.\n", name, verb)
	return nil
}

func processorRegistered(container *app.Container, cfg domain.Config, name string) bool {
	for _, info := range container.Dispatcher.Processors(cfg) {
		if info.Name == name {
			return true
		}
	}
	return false
}
