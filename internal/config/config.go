package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings bookgrid reads from its TOML file.
type Config struct {
	Endpoint       string
	RequestTimeout time.Duration
	RetryMax       int
	RetryWaitMin   time.Duration
	RetryWaitMax   time.Duration
	LogFile        string
	ListenAddr     string
	CORSOrigins    []string
}

const (
	defaultConfigPath   = "~/.config/bookgrid/config.toml"
	defaultEndpoint     = "http://localhost:8000/data/"
	defaultLogFile      = "~/.local/share/bookgrid/bookgrid.log"
	defaultListenAddr   = "127.0.0.1:5173"
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultRetryWaitMax = 5 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Endpoint:     defaultEndpoint,
		RetryWaitMin: defaultRetryWaitMin,
		RetryWaitMax: defaultRetryWaitMax,
		LogFile:      mustExpand(defaultLogFile),
		ListenAddr:   defaultListenAddr,
	}
}

// Load locates and parses the bookgrid config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint       string   `toml:"endpoint"`
		RequestTimeout string   `toml:"request_timeout"`
		RetryMax       int      `toml:"retry_max"`
		RetryWaitMin   string   `toml:"retry_wait_min"`
		RetryWaitMax   string   `toml:"retry_wait_max"`
		LogFile        string   `toml:"log_file"`
		ListenAddr     string   `toml:"listen_addr"`
		CORSOrigins    []string `toml:"cors_origins"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	switch v := strings.TrimSpace(raw.LogFile); v {
	case "":
	case "stderr", "stdout":
		cfg.LogFile = v
	default:
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.ListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if raw.RetryMax < 0 {
		return Config{}, fmt.Errorf("parse config: retry_max must be >= 0, got %d", raw.RetryMax)
	}
	cfg.RetryMax = raw.RetryMax

	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, 0); err != nil {
		return Config{}, err
	}
	if cfg.RetryWaitMin, err = parseDuration("retry_wait_min", raw.RetryWaitMin, defaultRetryWaitMin); err != nil {
		return Config{}, err
	}
	if cfg.RetryWaitMax, err = parseDuration("retry_wait_max", raw.RetryWaitMax, defaultRetryWaitMax); err != nil {
		return Config{}, err
	}

	for _, origin := range raw.CORSOrigins {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", field)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
