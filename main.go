package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/CrestNiraj12/flick/app"
	"github.com/CrestNiraj12/flick/infra/config"
	"github.com/CrestNiraj12/flick/infra/editor"
	"github.com/CrestNiraj12/flick/infra/imaging"
	"github.com/CrestNiraj12/flick/infra/kv"
	"github.com/CrestNiraj12/flick/infra/logging"
	"github.com/CrestNiraj12/flick/infra/poststore"
	"github.com/CrestNiraj12/flick/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return `Usage: flick [--version|-version|-v] [--help|-h]

Environment:
  FLICK_DATA_DIR       data directory (default ~/.config/flick)
  FLICK_STORE          file or sqlite (default file)
  FLICK_FETCH_TIMEOUT  image URL timeout (default 10s)
  FLICK_LOG_LEVEL      debug, info, warn or error (default info)
  FLICK_LOG_FILE       log file (default $FLICK_DATA_DIR/flick.log)
  FLICK_JPEG_QUALITY   1-100 (default 92)`
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore opens the configured key-value backend, creating the data
// directory if needed. An unreadable store file is moved aside and logged.
func openStore(cfg config.Config, logger *log.Logger) (app.KeyValueStore, io.Closer, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := kv.OpenSQLite(cfg.StorePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		s, err := kv.OpenFile(cfg.StorePath())
		if err != nil {
			return nil, nil, err
		}
		if backup, ok := s.Recovered(); ok {
			logger.Warn("store file was unreadable, starting empty", "path", s.Path(), "backup", backup)
		}
		return s, nopCloser{}, nil
	}
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("Flick %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger, then storage.
	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	store, storeCloser, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("open store", "backend", cfg.Store, "err", err)
		fmt.Fprintf(os.Stderr, "store: %v\n", err)
		os.Exit(1)
	}
	defer storeCloser.Close()
	logger.Info("starting", "version", version, "store", cfg.StorePath())

	// 3. Build services (concrete types satisfy app.* interfaces).
	posts := poststore.New(store, poststore.WithLogger(logger))

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Posts:    posts,
		Prefs:    store,
		Loader:   imaging.NewLoader(cfg.FetchTimeout),
		Renderer: imaging.NewRenderer(cfg.JPEGQuality),
		Editor:   editor.NewEnvEditor(),
		Log:      logger,
		DarkMode: config.LoadDarkMode(store),
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "flick: %v\n", err)
		os.Exit(1)
	}
}
