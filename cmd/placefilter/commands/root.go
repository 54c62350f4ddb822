package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/placefilter/internal/config"
	"github.com/jask/placefilter/internal/session"
	"github.com/jask/placefilter/internal/tui"
)

const closeTimeout = 5 * time.Second

var (
	cfgPath     string
	catalogPath string
	backend     string
	cfg         config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "placefilter",
		Short:        "Narrow a country / state / city catalog by successive selection",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if catalogPath != "" {
				loaded.Catalog.Path = catalogPath
			}
			if backend != "" {
				loaded.Store.Backend = backend
				if err := loaded.Validate(); err != nil {
					return err
				}
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog := fileLogger(cfg.Log)
			defer closeLog()
			return withRuntime(cmd.Context(), logger, func(rt *session.Runtime) error {
				p := tea.NewProgram(tui.New(rt.Session), tea.WithAltScreen())
				_, err := p.Run()
				return err
			})
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/placefilter/config.toml)")
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "location catalog JSON (default: bundled sample)")
	root.PersistentFlags().StringVar(&backend, "store", "", "selection store: sqlite, file or memory")

	root.AddCommand(showCmd(), selectCmd(), clearCmd(), resetCmd(), optionsCmd(), exportCmd(), prefsCmd(), configCmd())
	return root
}

// withRuntime opens a session, runs fn and always flushes the session.
func withRuntime(ctx context.Context, logger *slog.Logger, fn func(rt *session.Runtime) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := session.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if cerr := rt.Close(closeCtx); cerr != nil && err == nil {
			err = fmt.Errorf("close session: %w", cerr)
		}
	}()
	return fn(rt)
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// stderrLogger is used by the one-shot commands.
func stderrLogger(lc config.LogConfig, w io.Writer) *slog.Logger {
	lvl, err := parseLevel(lc.Level)
	// one-shot commands only surface warnings unless debug is asked for
	if err != nil || lvl > slog.LevelDebug && lvl < slog.LevelWarn {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// fileLogger writes to lc.Path because the terminal belongs to the TUI.
func fileLogger(lc config.LogConfig) (*slog.Logger, func()) {
	lvl, err := parseLevel(lc.Level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	if lc.Path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(lc.Path), 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(lc.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), func() { _ = f.Close() }
}
