package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/IgorBayerl/linecount/internal/filereader"
	"github.com/IgorBayerl/linecount/internal/filesystem"
	"github.com/IgorBayerl/linecount/internal/linecounter"
	"github.com/IgorBayerl/linecount/internal/logging"
	"github.com/IgorBayerl/linecount/internal/reporter/textsummary"
	"github.com/IgorBayerl/linecount/internal/rootconfig"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, counts the configured roots and writes the report to
// stdout. It returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	start := time.Now()

	flags := flag.NewFlagSet("linecount", flag.ContinueOnError)
	flags.SetOutput(stderr)
	baseDir := flags.String("basedir", ".", "Directory the roots (basic, auslander-parter, sefe, main.cpp) are resolved against, e.g. \"src\"")
	decodeStr := flags.String("decode", "skip", "What to do with bytes that are not valid UTF-8 (skip, replace)")
	verbosityStr := flags.String("verbosity", "Warning", "Logging verbosity level (Verbose, Info, Warning, Error, Off)")
	breakdown := flags.Bool("breakdown", false, "Print the line count of every root after the total")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments %v. The roots are fixed; use -basedir to move them.\n", flags.Args())
		return 1
	}

	verbosity, err := logging.ParseVerbosity(*verbosityStr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	decode, err := filereader.ParseDecodePolicy(*decodeStr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := logging.NewLogger(stderr, verbosity)
	cfg := rootconfig.NewConfiguration(*baseDir, nil, decode, verbosity, *breakdown)

	if absBase, err := filepath.Abs(cfg.BaseDirectory()); err == nil {
		logger.Info("Counting lines.", "basedir", absBase, "decode", cfg.DecodePolicy().String(), "roots", len(cfg.Roots()))
	}

	counter := linecounter.NewCounter(filesystem.DefaultFS{}, cfg.DecodePolicy(), logger)
	summary, err := counter.CountTotal(rootconfig.ResolvedRoots(cfg))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := textsummary.NewTextReportBuilder(stdout, cfg.ShowBreakdown()).CreateReport(summary); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("Counting completed.", "files", summary.Files(), "total", summary.Total, "seconds", time.Since(start).Seconds())
	return 0
}
