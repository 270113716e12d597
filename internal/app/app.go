// Package app assembles the editor: configuration, logging, theme, the
// document named on the command line, and the terminal it all runs in.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/mirao/hecto/internal/config"
	"github.com/mirao/hecto/internal/document"
	"github.com/mirao/hecto/internal/editor"
	"github.com/mirao/hecto/internal/highlight"
	"github.com/mirao/hecto/internal/log"
	"github.com/mirao/hecto/internal/terminal"
)

// Options configures the application.
type Options struct {
	// FileName is the file to open, empty for a fresh buffer.
	FileName string
	// ConfigPath is the Lua startup script, empty to skip.
	ConfigPath string
	// LogPath is the log file, empty to disable logging.
	LogPath string
	// LogLevel is the minimum level written to the log.
	LogLevel string
	// Version is shown in the welcome message.
	Version string
}

// App owns the terminal and the editor loop.
type App struct {
	terminal *terminal.Terminal
	editor   *editor.Editor
	logger   *log.Logger
	logFile  *os.File
}

// New builds the application from options. A file that cannot be opened
// is not fatal: the editor starts on an empty buffer and reports the
// failure on the status bar, matching what the user would want from an
// editor invoked with a typoed path.
func New(opts Options) (*App, error) {
	a := &App{logger: log.Null}

	if opts.LogPath != "" {
		file, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile = file
		a.logger = log.New(log.Config{
			Level:  log.ParseLevel(opts.LogLevel),
			Output: file,
			Prefix: "hecto",
		})
	}

	theme := highlight.DefaultTheme()
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			a.Shutdown()
			return nil, err
		}
		cfg.Apply()
		a.logger.Info("loaded config %s (%d filetypes)", opts.ConfigPath, len(cfg.FileTypes))

		if cfg.ThemePath != "" {
			theme, err = highlight.LoadTheme(cfg.ThemePath)
			if err != nil {
				a.Shutdown()
				return nil, err
			}
		}
	}

	initialStatus := ""
	doc := document.New()
	if opts.FileName != "" {
		opened, err := document.Open(opts.FileName)
		if err != nil {
			a.logger.Warn("open %s: %v", opts.FileName, err)
			initialStatus = "ERR: Could not open file: " + opts.FileName
		} else {
			doc = opened
			a.logger.Info("opened %s (%d rows, %s)", opts.FileName, doc.Len(), doc.FileTypeName())
		}
	}

	term, err := terminal.New()
	if err != nil {
		a.Shutdown()
		return nil, err
	}
	a.terminal = term

	editorOpts := []editor.Option{
		editor.WithTheme(theme),
		editor.WithLogger(a.logger.WithComponent("editor")),
		editor.WithVersion(opts.Version),
	}
	if initialStatus != "" {
		editorOpts = append(editorOpts, editor.WithStatus(initialStatus))
	}
	a.editor = editor.New(term, doc, editorOpts...)

	return a, nil
}

// Run takes over the terminal and drives the editor until quit. The
// terminal is restored on every exit path, panics included, so a crash
// does not leave the shell in raw mode.
func (a *App) Run() error {
	if err := a.terminal.Init(); err != nil {
		return err
	}
	defer a.terminal.Fini()

	start := time.Now()
	a.editor.Run()
	a.logger.Info("session ended after %s", time.Since(start).Round(time.Second))
	return nil
}

// Shutdown releases resources held outside the terminal session.
func (a *App) Shutdown() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
