package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCommandTree(t *testing.T) {
	want := map[string][]string{
		"render": {"format", "output"},
		"serve":  {"addr"},
		"fetch":  {"dump"},
		"logs":   {"lines"},
	}
	for name, flags := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %q not registered", name)
		}
		for _, flag := range flags {
			if cmd.Flags().Lookup(flag) == nil {
				t.Fatalf("%s is missing --%s", name, flag)
			}
		}
	}
	for _, flag := range []string{"config", "prefs", "endpoint", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("root is missing persistent --%s", flag)
		}
	}
}

func TestOptionsFromFlags(t *testing.T) {
	if err := rootCmd.PersistentFlags().Parse([]string{"--config", "/tmp/c.toml", "-e", "localhost:9000", "-v"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	t.Cleanup(func() {
		configPath, endpoint, verbose = "", "", false
	})

	opts := options()
	if opts.ConfigPath != "/tmp/c.toml" || opts.Endpoint != "localhost:9000" || !opts.Verbose {
		t.Fatalf("options() = %+v", opts)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.html")
	if err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "<html></html>")
		return err
	}); err != nil {
		t.Fatalf("writeFile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<html></html>" {
		t.Fatalf("output = %q, %v", data, err)
	}
}

func TestWriteFile_FailureRemovesOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.html")
	boom := errors.New("render failed")
	err := writeFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "<html>")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("writeFile error = %v, want %v", err, boom)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("partial output left behind: %v", err)
	}
}

func TestWriteFile_CreateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "books.html")
	called := false
	err := writeFile(path, func(io.Writer) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("writeFile = %v (write called %v), want create error before writing", err, called)
	}
}
