package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clipd/clipd/internal/app"
	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/infrastructure/web"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect clipboard history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryShowCommand(container),
		newHistoryCopyCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryWebCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit, "")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search history for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit, args[0])
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

// newHistoryShowCommand creates the 'history show' subcommand
func newHistoryShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <n>",
		Short: "Print the full content of the n-th entry (1 = newest)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := entryAt(container, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.Content)
			return nil
		},
	}
}

// newHistoryCopyCommand creates the 'history copy' subcommand
func newHistoryCopyCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <n>",
		Short: "Copy the n-th entry back to the clipboard (1 = newest)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Clipboard == nil || !container.Clipboard.Enabled() {
				return fmt.Errorf(ErrClipboardUnavailable)
			}
			entry, err := entryAt(container, args[0])
			if err != nil {
				return err
			}
			if err := container.Clipboard.Write(entry.Content); err != nil {
				return fmt.Errorf("failed to copy entry: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied entry %s (%d characters).\n", args[0], len(entry.Content))
			return nil
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the history store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return fmt.Errorf(ErrHistoryStoreUnavailable)
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return fmt.Errorf(ErrHistoryStoreUnavailable)
			}
			if err := container.HistoryStore.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			return nil
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show history store statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return fmt.Errorf(ErrHistoryStoreUnavailable)
			}
			stats, err := container.HistoryStore.Stats()
			if err != nil {
				return fmt.Errorf("failed to read history stats: %w", err)
			}
			displayHistoryStats(cmd.OutOrStdout(), stats, container.HistoryStore.Path())
			return nil
		},
	}
}

// newHistoryWebCommand creates the 'history web' subcommand
func newHistoryWebCommand(container *app.Container) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the history dashboard on localhost",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return fmt.Errorf(ErrHistoryStoreUnavailable)
			}
			server := web.NewServer(container.HistoryStore, container.Logger, port)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving history on http://%s\n", server.Addr())
			return server.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Dashboard port (default 8001)")
	return cmd
}

// listHistoryEntries writes entries one per line, truncated for display
func listHistoryEntries(out io.Writer, container *app.Container, limit int, search string) error {
	if container.HistoryStore == nil {
		return fmt.Errorf(ErrHistoryStoreUnavailable)
	}

	entries, err := container.HistoryStore.Entries(limit, search)
	if err != nil {
		return fmt.Errorf("failed to retrieve history entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for i, entry := range entries {
		fmt.Fprintf(out, "%3d | %s | %s\n",
			i+1,
			entry.Time().Format(domain.TimestampFormat),
			previewOf(entry.Content))
	}
	return nil
}

func entryAt(container *app.Container, arg string) (domain.HistoryEntry, error) {
	if container.HistoryStore == nil {
		return domain.HistoryEntry{}, fmt.Errorf(ErrHistoryStoreUnavailable)
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return domain.HistoryEntry{}, fmt.Errorf("entry index must be a positive integer, got %q", arg)
	}
	entries, err := container.HistoryStore.Entries(n, "")
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("failed to retrieve history entries: %w", err)
	}
	if n > len(entries) {
		return domain.HistoryEntry{}, fmt.Errorf("history has only %d entries", len(entries))
	}
	return entries[n-1], nil
}

func displayHistoryStats(out io.Writer, stats domain.HistoryStats, path string) {
	fmt.Fprintf(out, "Entries: %d\nTotal size: %d bytes\nStore: %s\n", stats.Entries, stats.TotalBytes, path)
	if !stats.Newest.IsZero() {
		fmt.Fprintf(out, "Newest: %s\n", stats.Newest.Format(domain.TimestampFormat))
	}
	if !stats.Oldest.IsZero() {
		fmt.Fprintf(out, "Oldest: %s\n", stats.Oldest.Format(domain.TimestampFormat))
	}
}

const previewLength = 80

func previewOf(content string) string {
	oneLine := make([]rune, 0, previewLength)
	for _, r := range content {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		oneLine = append(oneLine, r)
		if len(oneLine) >= previewLength {
			return string(oneLine) + "..."
		}
	}
	return string(oneLine)
}
