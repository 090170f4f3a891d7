package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/five82/bookgrid/internal/config"
	"github.com/five82/bookgrid/internal/logtail"
)

// DefaultLogLines is how many entries Logs prints when no count is given.
const DefaultLogLines = 50

// Logs prints the last n entries of the configured log file.
func Logs(opts Options, w io.Writer, n int) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return printLogs(cfg.LogFile, w, n)
}

func printLogs(path string, w io.Writer, n int) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("logging is disabled (log_file is empty)")
	}
	lines, err := logtail.Read(path, n)
	if err != nil {
		return err
	}
	for _, line := range logtail.FormatLines(lines) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
