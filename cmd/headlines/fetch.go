package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/abelbrown/headlines/internal/aggregate"
	"github.com/abelbrown/headlines/internal/config"
	"github.com/abelbrown/headlines/internal/export"
	"github.com/abelbrown/headlines/internal/logging"
	"github.com/abelbrown/headlines/internal/selection"
)

func runFetch() int {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	configPath := fs.String("config", config.ConfigPath(), "Path to config file")
	selectFlag := fs.String("select", "", `Topics: catalog numbers, "all", or custom topics, comma separated (e.g. "1,3,Python")`)
	regionsFlag := fs.String("regions", "", "Region codes, comma separated (default from config)")
	csvPath := fs.String("csv", "", "Also write results to this CSV file")
	fs.Parse(os.Args[1:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fail(err)
	}
	logging.Init(os.Stderr, cfg.Log.Level)
	logger := logging.WithPrefix("fetch")

	sel, errs := parseSelection(*selectFlag, *regionsFlag, cfg.UI.Regions)
	for _, e := range errs {
		logger.Warn("ignoring selection entry", "err", e)
	}
	logger.Debug("selection", "presets", sel.PresetSelection(), "custom", sel.CustomTopics())

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := pipeline.Run(ctx, sel.Topics(), sel.Regions())
	if err != nil {
		return fail(err)
	}

	printResult(os.Stdout, res)

	if *csvPath != "" {
		err := export.SaveCSV(*csvPath, res.Articles, time.Now())
		switch {
		case errors.Is(err, export.ErrNoArticles):
			logger.Warn("nothing to export", "path", *csvPath)
		case err != nil:
			return fail(err)
		default:
			logger.Info("wrote csv", "path", *csvPath, "articles", len(res.Articles))
		}
	}
	return 0
}

// parseSelection builds a Selection from the -select and -regions flags.
// An empty topic selection falls back to DefaultTopic.
func parseSelection(topics, regions string, defaultRegions []string) (*selection.Selection, []error) {
	sel := selection.NewWithRegions(defaultRegions)

	var errs []error
	if strings.TrimSpace(regions) != "" {
		errs = append(errs, sel.ApplyRegions(regions)...)
	}
	errs = append(errs, sel.ApplyInput(topics)...)

	if sel.TopicCount() == 0 {
		sel.AddCustom(selection.DefaultTopic)
	}
	return sel, errs
}

// printResult writes the summary line and one block per article.
func printResult(w io.Writer, res *aggregate.Result) {
	fmt.Fprintln(w, res.Summary())
	if failed := res.Failed(); failed > 0 {
		fmt.Fprintf(w, "(%d of %d feeds failed)\n", failed, len(res.Pairs))
	}
	for i, a := range res.Articles {
		fmt.Fprintf(w, "\n%3d. %s\n", i+1, a.Title)
		fmt.Fprintf(w, "     %s | %s | %s | %s\n", a.Source, a.Topic, a.Region, a.PublishedAt)
		fmt.Fprintf(w, "     %s\n", a.Link)
	}
}
