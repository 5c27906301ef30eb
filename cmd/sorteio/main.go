// Package main is the entry point for the sorteio application.
// sorteio runs fair random draws: numbers, names, teams, a spinning wheel and
// comment giveaways.
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
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/randomizedcoder/sorteio/internal/app"
	"github.com/randomizedcoder/sorteio/internal/config"
	"github.com/randomizedcoder/sorteio/internal/draw"
	"github.com/randomizedcoder/sorteio/internal/parse"
	"github.com/randomizedcoder/sorteio/internal/reveal"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

const usage = `usage: sorteio [global flags] <command> [flags] [items...]

commands:
  numbers    draw integers from a range
  names      draw names from a list
  teams      split a list into balanced teams
  wheel      spin a wheel with one segment per item
  comments   draw winners from "author: text" comments
  audit      measure the fairness of the engine
  version    print the version

Items come from the arguments or from -file (use - for stdin).
Run "sorteio -h" for global flags or "sorteio <command> -h" for command flags.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Load configuration from flags, profile and environment variables
	cfg, rest, err := config.LoadOutput(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(stderr, usage)
			return exitOK
		}
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}
	if len(rest) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	logger := newLogger(cfg.Debug, stderr)
	defer func() {
		_ = logger.Sync()
	}()

	// Ctrl-C skips the suspense animation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{
		logger: logger,
		drawer: app.New(cfg, logger),
		reveal: reveal.New(cfg, logger),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	logger.Debug("sorteio starting",
		zap.String("version", version),
		zap.String("command", rest[0]),
		zap.Uint64("seed", c.drawer.Seed()),
		zap.Bool("secure", cfg.SecureRandom),
	)

	switch rest[0] {
	case "numbers":
		err = c.numbers(ctx, rest[1:])
	case "names":
		err = c.names(ctx, rest[1:])
	case "teams":
		err = c.teams(ctx, rest[1:])
	case "wheel":
		err = c.wheel(ctx, rest[1:])
	case "comments":
		err = c.comments(ctx, rest[1:])
	case "audit":
		err = c.audit(rest[1:])
	case "version":
		fmt.Fprintln(stdout, version)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", rest[0], usage)
		return exitUsage
	}

	return c.exitCode(err)
}

// newLogger builds a JSON production logger, or a console development logger
// when debug is set, writing to w.
func newLogger(debug bool, w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder(encCfg)
	level := zap.InfoLevel
	if debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encCfg)
		level = zap.DebugLevel
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core)
}

// errSuspicious marks an audit whose chi-square exceeded the critical value.
var errSuspicious = errors.New("distribution looks biased")

// exitCode maps err to a process exit code, printing a corrective hint for
// user mistakes.
func (c *cli) exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(c.stderr, "error:", err)
		return exitUsage
	case errors.Is(err, draw.ErrEmptyCollection):
		fmt.Fprintln(c.stderr, "error: nothing to draw from, add items first")
		return exitUsage
	case errors.Is(err, parse.ErrParseNoResults):
		fmt.Fprintln(c.stderr, `error: no usable entries found, put one item (or "author: text" comment) per line`)
		return exitUsage
	case errors.Is(err, draw.ErrInvalidDrawConfiguration):
		fmt.Fprintln(c.stderr, "error:", err)
		return exitUsage
	case errors.Is(err, errSuspicious):
		fmt.Fprintln(c.stderr, "warning:", err)
		return exitRuntime
	default:
		c.logger.Error("command failed", zap.Error(err))
		fmt.Fprintln(c.stderr, "error:", err)
		return exitRuntime
	}
}

// joinArgs turns positional comment arguments into raw comment text.
func joinArgs(args []string) string {
	return strings.Join(args, "\n")
}
