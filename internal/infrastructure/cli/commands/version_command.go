package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clipd/clipd/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show clipd version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "clipd %s\n%s, %s/%s\n",
				buildString(version.Version, version.Commit, version.BuildDate),
				runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

// buildString folds the ldflags metadata into "v (commit, date)", omitting
// whatever was not stamped into the binary.
func buildString(ver, commit, date string) string {
	var meta []string
	if commit != "" {
		meta = append(meta, commit)
	}
	if date != "" {
		meta = append(meta, date)
	}
	if len(meta) == 0 {
		return ver
	}
	return fmt.Sprintf("%s (%s)", ver, strings.Join(meta, ", "))
}
