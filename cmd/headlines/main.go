// Command headlines aggregates news headlines by topic and region.
//
// Usage:
//
//	headlines                 Start the TUI
//	headlines tui             Start the TUI
//	headlines fetch           Non-interactive aggregation run
//	headlines starred         Print bookmarked links
//	headlines init            Write the default config file
//	headlines topics          Print the topic catalog
//	headlines regions         Print the region catalog
package main

import (
	"fmt"
	"os"
)

const usage = `headlines - topic and region news aggregator

Usage:
  headlines [command] [flags]

Commands:
  tui         Interactive terminal UI (default)
  fetch       Fetch headlines for a selection and print them
  starred     Print bookmarked article links (-clear removes them)
  init        Write the default config file
  topics      Print the numbered topic catalog
  regions     Print the region catalog

Environment:
  HEADLINES_BACKEND      Feed backend: proxy or direct
  HEADLINES_PROXY_URL    RSS-to-JSON proxy endpoint
  HEADLINES_NEWS_URL     News source base URL
  HEADLINES_CONCURRENCY  Parallel fetches per run
  HEADLINES_DB_DRIVER    Bookmark store: sqlite or postgres
  HEADLINES_DB_DSN       Bookmark store DSN
  HEADLINES_LOG_LEVEL    debug, info, warn or error

Run 'headlines <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		os.Exit(runTUI())
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	var code int
	switch cmd {
	case "tui":
		code = runTUI()
	case "fetch":
		code = runFetch()
	case "starred":
		code = runStarred()
	case "init":
		code = runInit()
	case "topics":
		printTopics(os.Stdout)
	case "regions":
		printRegions(os.Stdout)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "headlines: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		code = 1
	}
	os.Exit(code)
}
