package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/redirectctl/internal/config"
	"github.com/five82/redirectctl/internal/redirect"
)

// ErrUsage marks errors caused by bad command-line input.
var ErrUsage = errors.New("usage")

// Exec runs a single subcommand against the API and writes its result to
// stdout. args[0] is the command name.
func Exec(ctx context.Context, opts Options, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return usageError("no command given")
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := commandLogger(cfg, opts)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	name, rest := args[0], args[1:]
	logger.Debug().Str("command", name).Strs("args", rest).Str("api_url", client.BaseURL()).Msg("running command")

	cmd := &command{
		client: client,
		out:    stdout,
		errOut: opts.stderr(),
		log:    logger,
		count:  pageCount(cfg.PageSize),
	}
	switch name {
	case "get":
		return cmd.get(ctx, rest)
	case "list":
		return cmd.list(ctx, rest)
	case "put":
		return cmd.put(ctx, rest)
	case "delete":
		return cmd.delete(ctx, rest)
	case "hello":
		return cmd.hello(ctx, rest)
	case "health":
		return cmd.health(ctx, rest)
	default:
		return usageError("unknown command %q", name)
	}
}

type command struct {
	client *redirect.Client
	out    io.Writer
	errOut io.Writer
	log    zerolog.Logger
	count  string
}

func (c *command) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

func (c *command) get(ctx context.Context, args []string) error {
	fs := c.flags("get")
	if err := fs.Parse(args); err != nil {
		return usageError("get: %v", err)
	}
	if fs.NArg() != 1 {
		return usageError("get takes exactly one source path")
	}
	r, err := c.client.GetRedirect(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	return c.printJSON(r)
}

func (c *command) list(ctx context.Context, args []string) error {
	fs := c.flags("list")
	count := fs.String("count", c.count, "redirects per page")
	cursor := fs.String("cursor", "", "cursor returned by a previous page")
	all := fs.Bool("all", false, "follow next_cursor until the last page")
	if err := fs.Parse(args); err != nil {
		return usageError("list: %v", err)
	}
	if fs.NArg() != 0 {
		return usageError("list takes no arguments")
	}
	if *all && *cursor != "" {
		return usageError("list: -all and -cursor are mutually exclusive")
	}

	if !*all {
		page, err := c.client.GetRedirects(ctx, redirect.PageQuery{Count: *count, Cursor: *cursor})
		if err != nil {
			return err
		}
		return c.printJSON(page)
	}

	items := []redirect.Redirect{}
	err := redirect.Walk(ctx, c.client, *count, func(r redirect.Redirect) error {
		items = append(items, r)
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Debug().Int("items", len(items)).Msg("walked all pages")
	return c.printJSON(items)
}

func (c *command) put(ctx context.Context, args []string) error {
	fs := c.flags("put")
	if err := fs.Parse(args); err != nil {
		return usageError("put: %v", err)
	}
	if fs.NArg() != 2 {
		return usageError("put takes a source path and a destination path")
	}
	payload := redirect.Redirect{From: fs.Arg(0), To: fs.Arg(1)}
	if err := c.client.PutRedirect(ctx, payload); err != nil {
		return err
	}
	c.log.Info().Str("from", payload.From).Str("to", payload.To).Msg("redirect saved")
	_, err := fmt.Fprintf(c.out, "saved %s -> %s\n", payload.From, payload.To)
	return err
}

func (c *command) delete(ctx context.Context, args []string) error {
	fs := c.flags("delete")
	byID := fs.Bool("id", false, "treat the argument as an encoded id")
	if err := fs.Parse(args); err != nil {
		return usageError("delete: %v", err)
	}
	if fs.NArg() != 1 {
		return usageError("delete takes exactly one source path")
	}
	target := fs.Arg(0)
	var err error
	if *byID {
		err = c.client.DeleteRedirectByID(ctx, target)
	} else {
		err = c.client.DeleteRedirect(ctx, target)
	}
	if err != nil {
		return err
	}
	c.log.Info().Str("target", target).Bool("by_id", *byID).Msg("redirect deleted")
	_, err = fmt.Fprintf(c.out, "deleted %s\n", target)
	return err
}

func (c *command) hello(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError("hello takes no arguments")
	}
	resp, err := c.client.Hello(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(resp)
}

func (c *command) health(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError("health takes no arguments")
	}
	status, err := c.client.Health(ctx)
	if err != nil {
		return err
	}
	if err := c.printJSON(status); err != nil {
		return err
	}
	if !status.OK() {
		return fmt.Errorf("api health is %s", strings.ToLower(status.Status))
	}
	return nil
}

func (c *command) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
