package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Storage backends for the key-value store.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

const defaultFetchTimeout = 10 * time.Second

// Config holds application-level configuration.
type Config struct {
	DataDir      string        // Directory holding the store and log
	Store        string        // StoreFile or StoreSQLite
	FetchTimeout time.Duration // Timeout for loading an image URL
	LogLevel     log.Level
	LogFile      string
	JPEGQuality  int
}

// StorePath returns the backing file for the configured store.
func (c Config) StorePath() string {
	if c.Store == StoreSQLite {
		return filepath.Join(c.DataDir, "flick.db")
	}
	return filepath.Join(c.DataDir, "storage.json")
}

// Load reads configuration from environment variables.
//
//	FLICK_DATA_DIR     : data directory (default: ~/.config/flick)
//	FLICK_STORE        : "file" or "sqlite" (default: "file")
//	FLICK_FETCH_TIMEOUT: image URL timeout, Go duration (default: 10s)
//	FLICK_LOG_LEVEL    : debug, info, warn or error (default: info)
//	FLICK_LOG_FILE     : log file path (default: $FLICK_DATA_DIR/flick.log)
//	FLICK_JPEG_QUALITY : 1-100 (default: 92)
func Load() (Config, error) {
	dataDir := strings.TrimSpace(os.Getenv("FLICK_DATA_DIR"))
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".config", "flick")
	}

	store := strings.ToLower(strings.TrimSpace(os.Getenv("FLICK_STORE")))
	switch store {
	case "":
		store = StoreFile
	case StoreFile, StoreSQLite:
	default:
		return Config{}, fmt.Errorf("invalid FLICK_STORE %q: must be %q or %q", store, StoreFile, StoreSQLite)
	}

	timeout := defaultFetchTimeout
	if raw := strings.TrimSpace(os.Getenv("FLICK_FETCH_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid FLICK_FETCH_TIMEOUT %q: must be a positive duration", raw)
		}
		timeout = d
	}

	level := log.InfoLevel
	if raw := strings.TrimSpace(os.Getenv("FLICK_LOG_LEVEL")); raw != "" {
		l, err := log.ParseLevel(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FLICK_LOG_LEVEL: %w", err)
		}
		level = l
	}

	logFile := strings.TrimSpace(os.Getenv("FLICK_LOG_FILE"))
	if logFile == "" {
		logFile = filepath.Join(dataDir, "flick.log")
	}

	quality := 92
	if raw := strings.TrimSpace(os.Getenv("FLICK_JPEG_QUALITY")); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil || q < 1 || q > 100 {
			return Config{}, fmt.Errorf("invalid FLICK_JPEG_QUALITY %q: must be 1-100", raw)
		}
		quality = q
	}

	return Config{
		DataDir:      dataDir,
		Store:        store,
		FetchTimeout: timeout,
		LogLevel:     level,
		LogFile:      logFile,
		JPEGQuality:  quality,
	}, nil
}
