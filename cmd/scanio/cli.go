package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/hupe1980/scanio"
	"github.com/hupe1980/scanio/codec"
	"github.com/hupe1980/scanio/drain"
	"github.com/hupe1980/scanio/mmap"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type env struct {
	stdout io.Writer
	stderr io.Writer
	logger *scanio.Logger
}

type command struct {
	name    string
	summary string
	run     func(e *env, args []string) error
}

var errUsage = errors.New("usage")

func commands() []command {
	return []command{
		{"sanitize", "print the sanitized form of each entry name", runSanitize},
		{"cat", "write a file to stdout", runCat},
		{"probe", "report the early-release capability of this platform", runProbe},
		{"stat", "report how each file is read", runStat},
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	global := pflag.NewFlagSet("scanio", pflag.ContinueOnError)
	global.SetOutput(stderr)
	global.SetInterspersed(false)
	level := global.String("log-level", "warn", "log level (debug, info, warn, error)")
	format := global.String("log-format", "text", "log format (text, json)")
	global.Usage = func() { usage(stderr, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	logger, err := newLogger(stderr, *level, *format)
	if err != nil {
		fmt.Fprintf(stderr, "scanio: %v\n", err)
		return exitUsage
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr, global)
		return exitUsage
	}

	e := &env{stdout: stdout, stderr: stderr, logger: logger}
	for _, c := range commands() {
		if c.name != rest[0] {
			continue
		}
		switch err := c.run(e, rest[1:]); {
		case err == nil:
			return exitOK
		case errors.Is(err, pflag.ErrHelp):
			return exitOK
		case errors.Is(err, errUsage):
			return exitUsage
		default:
			fmt.Fprintf(stderr, "scanio %s: %v\n", c.name, err)
			return exitError
		}
	}

	fmt.Fprintf(stderr, "scanio: unknown command %q\n", rest[0])
	usage(stderr, global)
	return exitUsage
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: scanio [flags] <command> [args]")
	fmt.Fprintln(w, "\nCommands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, fs.FlagUsages())
}

func newLogger(w io.Writer, level, format string) (*scanio.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return scanio.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return scanio.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// parse parses a subcommand's flags and checks its positional argument count.
func parse(e *env, fs *pflag.FlagSet, args []string, minArgs int) error {
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() < minArgs {
		fmt.Fprintf(e.stderr, "scanio %s: expected at least %d argument(s)\n", fs.Name(), minArgs)
		fmt.Fprint(e.stderr, fs.FlagUsages())
		return errUsage
	}
	return nil
}

func runSanitize(e *env, args []string) error {
	fs := pflag.NewFlagSet("sanitize", pflag.ContinueOnError)
	root := fs.String("root", "", "join each sanitized name under this directory")
	if err := parse(e, fs, args, 1); err != nil {
		return err
	}

	s := scanio.New(scanio.WithLogger(e.logger))
	for _, name := range fs.Args() {
		if *root == "" {
			fmt.Fprintln(e.stdout, s.Sanitize(name))
			continue
		}
		p, err := s.Join(*root, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, p)
	}
	return nil
}

func runCat(e *env, args []string) error {
	fs := pflag.NewFlagSet("cat", pflag.ContinueOnError)
	threshold := fs.Int64("threshold", drain.DefaultThreshold(runtime.GOOS), "map files of at least this many bytes (negative maps all)")
	if err := parse(e, fs, args, 1); err != nil {
		return err
	}

	opts := []scanio.Option{scanio.WithLogger(e.logger)}
	if fs.Changed("threshold") {
		n := *threshold
		opts = append(opts, scanio.WithThreshold(func(string) int64 { return n }))
	}
	s := scanio.New(opts...)

	for _, path := range fs.Args() {
		res, err := s.ReadFile(context.Background(), path)
		if err != nil {
			return err
		}
		if _, err := e.stdout.Write(res.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

type probeReport struct {
	GOOS       string `json:"goos"`
	Capability string `json:"capability"`
	Threshold  int64  `json:"map_threshold"`
}

func runProbe(e *env, args []string) error {
	fs := pflag.NewFlagSet("probe", pflag.ContinueOnError)
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := parse(e, fs, args, 0); err != nil {
		return err
	}

	mmap.SetLogger(e.logger.Logger)
	r := probeReport{
		GOOS:       runtime.GOOS,
		Capability: mmap.Probe().String(),
		Threshold:  drain.DefaultThreshold(runtime.GOOS),
	}
	if *asJSON {
		return codec.Encode(e.stdout, codec.Default, r)
	}
	fmt.Fprintf(e.stdout, "goos:       %s\ncapability: %s\nthreshold:  %d\n", r.GOOS, r.Capability, r.Threshold)
	return nil
}

type statReport struct {
	Path     string        `json:"path"`
	Size     int64         `json:"size"`
	Strategy string        `json:"strategy"`
	Bytes    int           `json:"bytes"`
	Grows    int           `json:"grows"`
	Reads    int           `json:"reads"`
	UTF8     *bool         `json:"utf8,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

type statObserver struct {
	stats drain.Stats
}

func (*statObserver) OnGrow(int, int) {}

func (o *statObserver) OnComplete(s drain.Stats, _ error) { o.stats = s }

func runStat(e *env, args []string) error {
	fs := pflag.NewFlagSet("stat", pflag.ContinueOnError)
	asJSON := fs.Bool("json", false, "emit one JSON object per file")
	checkUTF8 := fs.Bool("utf8", false, "report whether the content is valid UTF-8")
	codecName := fs.String("codec", "go-json", "JSON codec (json, go-json)")
	if err := parse(e, fs, args, 1); err != nil {
		return err
	}

	c, ok := codec.ByName(*codecName)
	if !ok {
		fmt.Fprintf(e.stderr, "scanio stat: unknown codec %q\n", *codecName)
		return errUsage
	}

	var failed int
	for _, path := range fs.Args() {
		r := statFile(path, e.logger, *checkUTF8)
		if r.Error != "" {
			failed++
		}
		if *asJSON {
			if err := codec.Encode(e.stdout, c, r); err != nil {
				return err
			}
			continue
		}
		if r.Error != "" {
			fmt.Fprintf(e.stdout, "%s\terror: %s\n", r.Path, r.Error)
			continue
		}
		fmt.Fprintf(e.stdout, "%s\t%d bytes\t%s\tgrows=%d reads=%d", r.Path, r.Bytes, r.Strategy, r.Grows, r.Reads)
		if r.UTF8 != nil {
			fmt.Fprintf(e.stdout, "\tutf8=%t", *r.UTF8)
		}
		fmt.Fprintln(e.stdout)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, fs.NArg())
	}
	return nil
}

func statFile(path string, logger *scanio.Logger, checkUTF8 bool) statReport {
	obs := &statObserver{}
	res, err := drain.ReadFileContext(context.Background(), path,
		drain.WithLogger(logger.Logger),
		drain.WithObserver(obs),
	)

	r := statReport{
		Path:     path,
		Size:     obs.stats.SizeHint,
		Strategy: "stream",
		Bytes:    res.Len,
		Grows:    obs.stats.Grows,
		Reads:    obs.stats.Reads,
		Duration: obs.stats.Duration,
	}
	if obs.stats.Mapped {
		r.Strategy = "mmap"
	}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	if checkUTF8 {
		valid := res.ValidUTF8()
		r.UTF8 = &valid
	}
	logger.WithPath(path).LogDrain(context.Background(), r.Bytes, r.Grows, obs.stats.Mapped, nil)
	return r
}
