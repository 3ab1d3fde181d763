// pick is an interactive terminal picker. Items come from stdin, a file, an
// HTTP endpoint, or the lists in ~/.config/pick/config.toml; the chosen
// values are printed to stdout, one per line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/five82/pick/internal/app"
	"github.com/five82/pick/internal/prefs"
)

// exitCancelled matches the shell convention for an interrupted command.
const exitCancelled = 130

func main() {
	os.Exit(run())
}

func run() int {
	var (
		opts        app.Options
		pollSeconds int
		logOutput   string
	)

	flagSet := pflag.NewFlagSet("pick", pflag.ContinueOnError)
	flagSet.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/pick/config.toml)")
	flagSet.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default "+prefs.DefaultPath()+")")
	flagSet.StringVarP(&opts.List, "list", "l", "", "configured list to open first")
	flagSet.StringVarP(&opts.File, "file", "f", "", "pick from a newline separated file")
	flagSet.StringVarP(&opts.URL, "url", "u", "", "pick from an HTTP endpoint returning JSON items")
	flagSet.BoolVarP(&opts.Multi, "multi", "m", false, "allow selecting several items")
	flagSet.BoolVar(&opts.Fuzzy, "fuzzy", false, "match queries fuzzily instead of by substring")
	flagSet.IntVar(&pollSeconds, "poll", 0, "reload interval in seconds (optional)")
	flagSet.StringVar(&opts.Theme, "theme", "", "color theme (Nightfox, Kanagawa, Slate)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return 0
		}
		fmt.Fprintf(os.Stderr, "pick: %v\n", err)
		return 2
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return 0
	}
	if args := flagSet.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "pick: unexpected argument: %s\n", args[0])
		return 2
	}
	if pollSeconds < 0 {
		fmt.Fprintf(os.Stderr, "pick: --poll must not be negative\n")
		return 2
	}
	opts.PollEvery = time.Duration(pollSeconds) * time.Second

	logger, closeLog, err := openLogger(logOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pick: open log file %s: %v\n", logOutput, err)
		return 1
	}
	defer closeLog()
	opts.Logger = logger

	// The picker draws on stderr so stdout carries only the result.
	opts.ProgramOptions = []tea.ProgramOption{tea.WithOutput(os.Stderr)}
	if !stdinIsTerminal() {
		opts.Stdin = os.Stdin
		opts.ProgramOptions = append(opts.ProgramOptions, tea.WithInputTTY())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, err := app.Run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pick: %v\n", err)
		return 1
	}
	if res.Cancelled {
		return exitCancelled
	}
	for _, v := range res.Values {
		fmt.Fprintln(os.Stdout, v)
	}
	return 0
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// openLogger returns a JSON logger writing to path, or a discarding logger
// when path is empty. The terminal belongs to the picker.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	printUsage(os.Stderr)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `pick: choose items from a long list in the terminal.

Items are read from stdin when it is piped, from --file or --url, or
from the lists configured in ~/.config/pick/config.toml. Selected values
are written to stdout, one per line. Cancelling exits with status 130.

Usage:
  pick [flags]

Examples:
  # Pick a file
  find . -type f | pick

  # Pick several hosts from a configured list
  pick --list hosts --multi

  # Pick from an HTTP endpoint, reloading every 10 seconds
  pick --url http://127.0.0.1:7487/api/items --poll 10

Flags:
`)
}
