package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/redirectctl/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	pollSeconds := flag.Int("poll", 0, "browser refresh interval in seconds (optional, defaults to 5s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	args := flag.Args()
	var err error
	if len(args) == 0 || args[0] == "browse" {
		err = app.Run(ctx, opts)
	} else {
		err = app.Exec(ctx, opts, args, os.Stdout)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrUsage):
		fmt.Fprintf(os.Stderr, "redirectctl: %v\n\n", err)
		usage()
		return 2
	default:
		fmt.Fprintf(os.Stderr, "redirectctl: %v\n", err)
		return 1
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: redirectctl [flags] [command] [args]\n\n")
	fmt.Fprintf(out, "commands:\n")
	fmt.Fprintf(out, "  browse                      interactive browser (default)\n")
	fmt.Fprintf(out, "  get <from>                  show one redirect\n")
	fmt.Fprintf(out, "  list [-count n] [-cursor c] [-all]\n")
	fmt.Fprintf(out, "  put <from> <to>             create or replace a redirect\n")
	fmt.Fprintf(out, "  delete [-id] <from|id>      remove a redirect\n")
	fmt.Fprintf(out, "  hello                       call the smoke-test endpoint\n")
	fmt.Fprintf(out, "  health                      show the api health report\n\n")
	fmt.Fprintf(out, "flags:\n")
	flag.PrintDefaults()
}
