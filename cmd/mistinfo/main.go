package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dm/mistinfo/internal/client"
	"github.com/dm/mistinfo/internal/config"
	"github.com/dm/mistinfo/internal/engine"
	"github.com/dm/mistinfo/internal/format"
	"github.com/dm/mistinfo/internal/logging"
	"github.com/dm/mistinfo/internal/runner"
	"github.com/dm/mistinfo/internal/tui"
)

const (
	defaultConfigFile = "config.json"
	defaultLogFile    = "mist_api_log.log"

	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type cliOptions struct {
	configFile string
	outputFile string
	logFile    string
	logLevel   string
	logFormat  string
	sequential bool
	progress   bool
}

// errUsage marks a command line that could not be parsed.
var errUsage = errors.New("usage error")

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var o cliOptions
	fs := flag.NewFlagSet("mistinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configFile, "config_file", defaultConfigFile, "path to the JSON or YAML configuration file")
	fs.StringVar(&o.outputFile, "output_file", runner.DefaultOutputPath, "path of the JSON report; the HTML report is written next to it")
	fs.StringVar(&o.logFile, "log_file", "", "path of the log file, \"-\" for stderr (default from config, else "+defaultLogFile+")")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	fs.StringVar(&o.logFormat, "log-format", "", "log format: text or json (overrides config)")
	fs.BoolVar(&o.sequential, "sequential", false, "fetch resources one after another instead of concurrently")
	fs.BoolVar(&o.progress, "progress", false, "show a live progress view on stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: mistinfo [--config_file config.json] [--output_file mist_api_data.json] [--log_file mist_api_log.log] [--sequential] [--progress]\n\n")
		fmt.Fprintf(stderr, "examples:\n")
		fmt.Fprintf(stderr, "  mistinfo\n")
		fmt.Fprintf(stderr, "  mistinfo --config_file site.yaml --output_file out.json\n")
		fmt.Fprintf(stderr, "  MIST_TOKEN=... mistinfo --progress\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return o, err
		}
		return o, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return o, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	if o.outputFile == "" {
		return o, fmt.Errorf("%w: --output_file must not be empty", errUsage)
	}
	if o.logFormat != "" && o.logFormat != "text" && o.logFormat != "json" {
		return o, fmt.Errorf("%w: --log-format must be text or json", errUsage)
	}
	return o, nil
}

// loggingOptions merges the flag values over the config file's logging block.
func loggingOptions(o cliOptions, cfg config.LoggingConfig) logging.Options {
	lo := logging.Options{Level: cfg.Level, Format: cfg.Format, Path: cfg.File}
	if o.logLevel != "" {
		lo.Level = o.logLevel
	}
	if o.logFormat != "" {
		lo.Format = o.logFormat
	}
	if o.logFile != "" {
		lo.Path = o.logFile
	}
	if lo.Path == "" {
		lo.Path = defaultLogFile
	}
	return lo
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	start := time.Now()

	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	logger, closer, err := logging.Open(loggingOptions(o, cfg.Logging))
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to open log file: %v\n", err)
		return exitFailure
	}
	defer closer.Close()

	c, err := client.NewDefaultClient(cfg.ClientConfig())
	if err != nil {
		logger.Error("invalid client configuration", "error", err)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	opts := runner.Options{
		OutputPath: o.outputFile,
		Sequential: o.sequential || cfg.Sequential,
	}

	var res *runner.Result
	if o.progress {
		res, err = tui.RunWithProgress(ctx, c.SiteID(), stderr, func(ctx context.Context, progress func(engine.Progress)) (*runner.Result, error) {
			opts.Progress = progress
			return runner.New(c, logger, opts).Run(ctx)
		})
	} else {
		res, err = runner.New(c, logger, opts).Run(ctx)
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		fmt.Fprintf(stdout, "Total runtime: %s\n", format.FormatDuration(time.Since(start)))
		return exitFailure
	}

	if o.progress {
		fmt.Fprintln(stdout, tui.RenderSummary(res))
	} else {
		if werr := res.WriteErr(); werr != nil {
			fmt.Fprintf(stderr, "warning: %v\n", werr)
		}
		fmt.Fprintf(stdout, "Total runtime: %s\n", format.FormatDuration(time.Since(start)))
	}
	return exitOK
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
