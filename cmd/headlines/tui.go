package main

import (
	"context"
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/headlines/internal/bookmark"
	"github.com/abelbrown/headlines/internal/config"
	"github.com/abelbrown/headlines/internal/logging"
	"github.com/abelbrown/headlines/internal/selection"
	"github.com/abelbrown/headlines/internal/ui"
)

func runTUI() int {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	configPath := fs.String("config", config.ConfigPath(), "Path to config file")
	fs.Parse(os.Args[1:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fail(err)
	}

	// The TUI owns the terminal, so logs go to a file.
	if err := logging.InitFile(cfg.LogDir(), cfg.Log.Level); err != nil {
		return fail(err)
	}
	defer logging.Close()

	st, err := openStore(cfg)
	if err != nil {
		return fail(err)
	}
	defer st.Close()

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return fail(err)
	}

	bookmarks := bookmark.Load(context.Background(), st)
	logging.Info("headlines starting", "backend", cfg.Feed.Backend, "store", st.Driver(), "bookmarks", bookmarks.Len())

	app := ui.NewApp(ui.Config{
		Selection: selection.NewWithRegions(cfg.UI.Regions),
		Bookmarks: bookmarks,
		Run:       pipeline.Run,
		Layout:    cfg.UI.Layout,
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.Error("program exited with error", "err", err)
		return fail(err)
	}
	return 0
}
