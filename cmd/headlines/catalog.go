package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/abelbrown/headlines/internal/bookmark"
	"github.com/abelbrown/headlines/internal/config"
	"github.com/abelbrown/headlines/internal/logging"
	"github.com/abelbrown/headlines/internal/selection"
)

func runStarred() int {
	fs := flag.NewFlagSet("starred", flag.ExitOnError)
	configPath := fs.String("config", config.ConfigPath(), "Path to config file")
	clearAll := fs.Bool("clear", false, "Remove all bookmarks")
	fs.Parse(os.Args[1:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fail(err)
	}
	logging.Init(os.Stderr, cfg.Log.Level)

	st, err := openStore(cfg)
	if err != nil {
		return fail(err)
	}
	defer st.Close()

	ctx := context.Background()
	bookmarks := bookmark.Load(ctx, st)
	if *clearAll {
		n := bookmarks.Len()
		if err := bookmarks.Clear(ctx); err != nil {
			return fail(err)
		}
		fmt.Printf("Cleared %d starred articles.\n", n)
		return 0
	}

	printStarred(os.Stdout, bookmarks.Links())
	return 0
}

func runInit() int {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", config.ConfigPath(), "Path to config file")
	force := fs.Bool("force", false, "Overwrite an existing config file")
	fs.Parse(os.Args[1:])

	if err := writeDefaultConfig(*configPath, *force); err != nil {
		return fail(err)
	}
	fmt.Printf("Wrote %s\n", *configPath)
	return 0
}

// writeDefaultConfig saves DefaultConfig to path, refusing to replace an
// existing file unless force is set.
func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}
	}
	return config.DefaultConfig().Save(path)
}

func printStarred(w io.Writer, links []string) {
	if len(links) == 0 {
		fmt.Fprintln(w, "No starred articles.")
		return
	}
	for _, l := range links {
		fmt.Fprintln(w, l)
	}
}

// printTopics prints the catalog with the 1-based numbers -select accepts.
func printTopics(w io.Writer) {
	for i, t := range selection.PresetTopics {
		fmt.Fprintf(w, "%2d. %s\n", i+1, t)
	}
}

func printRegions(w io.Writer) {
	for _, r := range selection.Regions {
		fmt.Fprintf(w, "%-3s %-16s %s\n", r.Code, r.Name, r.Edition())
	}
}
