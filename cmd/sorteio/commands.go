package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/randomizedcoder/sorteio/internal/app"
	"github.com/randomizedcoder/sorteio/internal/fairness"
	"github.com/randomizedcoder/sorteio/internal/parse"
	"github.com/randomizedcoder/sorteio/internal/reveal"
)

// errUsage wraps command line mistakes.
var errUsage = errors.New("usage")

// cli holds what every subcommand needs.
type cli struct {
	logger *zap.Logger
	drawer *app.Drawer
	reveal *reveal.Revealer
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

func (c *cli) numbers(ctx context.Context, args []string) error {
	fs := c.flagSet("numbers")
	lo := fs.Int64("min", 1, "Smallest number that can be drawn")
	hi := fs.Int64("max", 100, "Largest number that can be drawn")
	count := fs.Int("count", 1, "How many numbers to draw")
	repeat := fs.Bool("repeat", false, "Allow the same number more than once")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: numbers takes no arguments, got %q", errUsage, fs.Args())
	}

	res, err := c.drawer.Numbers(app.NumbersRequest{
		Min:          *lo,
		Max:          *hi,
		Count:        *count,
		AllowRepeats: *repeat,
	})
	if err != nil {
		return err
	}
	return c.show(ctx, reveal.Numbers(*lo, *hi), res.Result)
}

func (c *cli) names(ctx context.Context, args []string) error {
	fs := c.flagSet("names")
	count := fs.Int("count", 1, "How many names to draw")
	repeat := fs.Bool("repeat", false, "Allow the same name more than once")
	file := fs.String("file", "", "Read one name per line from this file (- for stdin)")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	names, err := c.items(*file, fs.Args())
	if err != nil {
		return err
	}
	res, err := c.drawer.Names(app.NamesRequest{Names: names, Count: *count, AllowRepeats: *repeat})
	if err != nil {
		return err
	}
	return c.show(ctx, reveal.Items(names), res.Result)
}

func (c *cli) teams(ctx context.Context, args []string) error {
	fs := c.flagSet("teams")
	teams := fs.Int("teams", 2, "Number of teams")
	file := fs.String("file", "", "Read one participant per line from this file (- for stdin)")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	members, err := c.items(*file, fs.Args())
	if err != nil {
		return err
	}
	res, err := c.drawer.Teams(app.TeamsRequest{Members: members, Teams: *teams})
	if err != nil {
		return err
	}
	return c.show(ctx, reveal.Items(members), res.Result)
}

func (c *cli) wheel(ctx context.Context, args []string) error {
	fs := c.flagSet("wheel")
	file := fs.String("file", "", "Read one segment per line from this file (- for stdin)")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	items, err := c.items(*file, fs.Args())
	if err != nil {
		return err
	}
	res, err := c.drawer.Wheel(app.WheelRequest{Items: items})
	if err != nil {
		return err
	}
	return c.show(ctx, reveal.Items(items), res.Result)
}

func (c *cli) comments(ctx context.Context, args []string) error {
	fs := c.flagSet("comments")
	count := fs.Int("count", 1, "How many winners to draw")
	repeat := fs.Bool("repeat", false, "Allow the same comment to win more than once")
	file := fs.String("file", "", `Read one "author: text" comment per line from this file (- for stdin)`)
	fake := fs.Int("fake", 0, "Draw from this many simulated comments instead")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	var raw string
	switch {
	case *fake > 0:
		raw = parse.Format(c.drawer.FakeComments(*fake), "")
	case *file != "":
		b, err := c.readFile(*file)
		if err != nil {
			return err
		}
		raw = string(b)
	default:
		raw = joinArgs(fs.Args())
	}

	res, err := c.drawer.Comments(app.CommentsRequest{Raw: raw, Winners: *count, AllowRepeats: *repeat})
	if err != nil {
		return err
	}
	// Comments already accepted raw; the lines only feed the teaser.
	lines, _ := parse.Lines(raw)
	return c.show(ctx, reveal.Items(lines), res.Result)
}

func (c *cli) audit(args []string) error {
	fs := c.flagSet("audit")
	kind := fs.String("kind", app.AuditSample, "What to audit: sample, wheel or partition")
	n := fs.Int("n", 10, "Number of items or wheel segments")
	k := fs.Int("k", 3, "Sample size (sample) or group count (partition)")
	trials := fs.Int("trials", 10000, "Number of repetitions")
	z := fs.Float64("z", 3.09, "Standard deviations allowed before flagging bias")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	stats, err := c.drawer.Audit(app.AuditRequest{Kind: *kind, N: *n, K: *k, Trials: *trials})
	if err != nil {
		return err
	}

	printStats(c.stdout, *kind, stats, *z)
	if !stats.Fair(*z) {
		return fmt.Errorf("%w: chi-square %.2f exceeds %.2f", errSuspicious,
			stats.ChiSquare, fairness.Critical(stats.DegreesOfFreedom(), *z))
	}
	return nil
}

func printStats(w io.Writer, kind string, s fairness.Stats, z float64) {
	fmt.Fprintf(w, "audit %s: %d trials\n\n", kind, s.Trials)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "outcome\tcount\tdeviation\t")
	for i, count := range s.Counts {
		fmt.Fprintf(tw, "%d\t%d\t%+.2f%%\t\n", i+1, count, 100*(float64(count)-s.Expected)/s.Expected)
	}
	_ = tw.Flush()

	verdict := "fair"
	if !s.Fair(z) {
		verdict = "suspicious"
	}
	fmt.Fprintf(w, "\nexpected %.2f per outcome (min %d, max %d)\n", s.Expected, s.Min, s.Max)
	fmt.Fprintf(w, "chi-square %.2f with %d degrees of freedom, critical %.2f\n",
		s.ChiSquare, s.DegreesOfFreedom(), fairness.Critical(s.DegreesOfFreedom(), z))
	fmt.Fprintf(w, "verdict: %s\n", verdict)
}

// items returns the list for a draw: lines of file when given, otherwise the
// positional arguments. Both are trimmed and blank entries dropped.
func (c *cli) items(file string, args []string) ([]string, error) {
	if file == "" {
		return parse.Lines(joinArgs(args))
	}
	r, err := c.open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return parse.ReadLines(r)
}

func (c *cli) readFile(name string) ([]byte, error) {
	r, err := c.open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}

// open returns stdin for "-" and the named file otherwise.
func (c *cli) open(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(c.stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// show plays the suspense animation on stderr and then prints the report.
func (c *cli) show(ctx context.Context, teaser reveal.Teaser, res app.Result) error {
	frames := 0
	err := c.reveal.Run(ctx, teaser, func(s string) {
		frames++
		fmt.Fprintf(c.stderr, "\r%-32s", s)
	})
	if frames > 0 {
		fmt.Fprint(c.stderr, "\r\n")
	}
	if errors.Is(err, context.Canceled) {
		c.logger.Info("reveal skipped")
	}

	fmt.Fprint(c.stdout, res.Report)
	if res.ExportPath != "" {
		fmt.Fprintf(c.stderr, "report saved to %s\n", res.ExportPath)
	}
	if seed := c.drawer.Seed(); seed != 0 {
		fmt.Fprintf(c.stderr, "seed %d (replay with -seed %d)\n", seed, seed)
	}
	return nil
}
