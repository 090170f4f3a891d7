package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/bookgrid/internal/app"
)

var (
	// Global flags
	configPath string
	prefsPath  string
	endpoint   string
	verbose    bool
)

// rootCmd runs the terminal UI.
var rootCmd = &cobra.Command{
	Use:   "bookgrid",
	Short: "Browse the top books list in the terminal",
	Long: `bookgrid fetches the top books list from a local JSON endpoint once
and shows it as a card grid.

Run without arguments to start the interactive terminal UI.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), options())
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch once and write the page as HTML, Markdown or terminal text",
	Example: `  bookgrid render -o books.html
  bookgrid render --format terminal`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Fetch once and serve the grid over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		return app.Serve(cmd.Context(), options(), addr)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch once and print the validated items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dump, _ := cmd.Flags().GetBool("dump")
		return app.Fetch(cmd.Context(), options(), cmd.OutOrStdout(), dump)
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the end of the log file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, _ := cmd.Flags().GetInt("lines")
		return app.Logs(options(), cmd.OutOrStdout(), lines)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/bookgrid/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "prefs file (default ~/.config/bookgrid/prefs.toml)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "books endpoint URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	renderCmd.Flags().StringP("format", "f", "html", "output format: html, markdown or terminal")
	renderCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	serveCmd.Flags().String("addr", "", "listen address (default from config, 127.0.0.1:5173)")

	fetchCmd.Flags().Bool("dump", false, "print a go-spew dump instead of JSON")

	logsCmd.Flags().IntP("lines", "n", app.DefaultLogLines, "number of entries to show (0 for all)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(logsCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "bookgrid: %v\n", err)
		return 1
	}
	return 0
}

func options() app.Options {
	return app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		Endpoint:   endpoint,
		Verbose:    verbose,
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("format")
	format, err := app.ParseFormat(name)
	if err != nil {
		return err
	}

	write := func(w io.Writer) error {
		return app.Render(cmd.Context(), options(), w, format)
	}
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		return writeFile(path, write)
	}
	return write(cmd.OutOrStdout())
}

// writeFile creates path and fills it with write. A failed write removes
// the file so no partial output is left behind.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
