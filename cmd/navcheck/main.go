// Command navcheck reports table-of-contents entries that differ between
// locales. With -strict it exits non-zero when any are found, for use in CI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"finitefield.org/rustguide-web/internal/nav"
	"finitefield.org/rustguide-web/internal/observability"
)

const (
	exitOK       = 0
	exitWarnings = 1
	exitError    = 2
)

type report struct {
	Reference  string                   `json:"reference"`
	Locales    []string                 `json:"locales"`
	Consistent bool                     `json:"consistent"`
	Warnings   []nav.ConsistencyWarning `json:"warnings"`
}

func main() {
	logger, err := observability.NewLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	defer func() { _ = logger.Sync() }()
	os.Exit(run(os.Args[1:], os.Stdout, logger))
}

func run(args []string, stdout io.Writer, logger *zap.Logger) int {
	fs := flag.NewFlagSet("navcheck", flag.ContinueOnError)
	fs.SetOutput(stdout)
	file := fs.String("file", "", "navigation YAML file (defaults to the compiled-in table of contents)")
	strict := fs.Bool("strict", false, "exit non-zero when locales diverge")
	format := fs.String("format", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *format != "text" && *format != "json" {
		logger.Error("unknown format", zap.String("format", *format))
		return exitError
	}

	var (
		reg *nav.Registry
		err error
	)
	if *file != "" {
		reg, err = nav.LoadFile(*file)
	} else {
		reg, err = nav.Default()
	}
	if err != nil {
		logger.Error("load navigation", zap.String("file", *file), zap.Error(err))
		return exitError
	}

	rep := report{
		Reference:  reg.Reference().String(),
		Consistent: reg.Consistent(),
		Warnings:   reg.Warnings(),
	}
	for _, l := range reg.Locales() {
		rep.Locales = append(rep.Locales, l.String())
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			logger.Error("write report", zap.Error(err))
			return exitError
		}
	default:
		for _, w := range rep.Warnings {
			fmt.Fprintln(stdout, w.String())
		}
		fmt.Fprintf(stdout, "%d locales checked against %s, %d warnings\n", len(rep.Locales), rep.Reference, len(rep.Warnings))
	}

	if *strict && !rep.Consistent {
		return exitWarnings
	}
	return exitOK
}
