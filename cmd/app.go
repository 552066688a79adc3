// Package cmd implements the CLI application to extract statements and
// compute their tax reports.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/extracto"
	"github.com/etnz/extracto/pdfsource"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&parseCmd{}, "statement")
	c.Register(&checkCmd{}, "statement")

	c.Register(&taxCmd{}, "reports")
	c.Register(&incomeCmd{}, "reports")
	c.Register(&openCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Verbose enables debug traces on stderr.
var Verbose = flag.Bool("v", false, "print debug traces")

var envFile = flag.String("env", ".env", "Path to an optional file of EXTRACTO_* variables")

// statementFlags are the flags shared by the commands reading a statement.
type statementFlags struct {
	footer   float64
	year     int
	currency string
}

func (s *statementFlags) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&s.footer, "footer", 0, "Height of the page footer band to ignore, in points (default from EXTRACTO_FOOTER_BAND or 120)")
	f.IntVar(&s.year, "year", 0, "Year of the dates printed without one (default from EXTRACTO_YEAR or the current year)")
	f.StringVar(&s.currency, "currency", "", "Currency of the statement amounts (default from EXTRACTO_CURRENCY or EUR)")
}

// apply overrides the configuration with the flags that were set.
func (s *statementFlags) apply(cfg *Config) {
	if s.footer > 0 {
		cfg.FooterBand = s.footer
	}
	if s.year > 0 {
		cfg.Year = s.year
	}
	if s.currency != "" {
		cfg.Currency = s.currency
	}
}

// loadStatement reads the configuration, applies the flags, and extracts
// the statement of the PDF file given as the single argument.
func loadStatement(ctx context.Context, f *flag.FlagSet, flags *statementFlags) (*extracto.Statement, Config, error) {
	if f.NArg() != 1 {
		return nil, Config{}, errUsage
	}
	cfg, err := LoadConfig(*envFile)
	if err != nil {
		return nil, cfg, err
	}
	flags.apply(&cfg)

	doc, err := pdfsource.Open(f.Arg(0))
	if err != nil {
		return nil, cfg, err
	}

	opts := cfg.Options()
	if *Verbose {
		opts.Logf = log.Printf
		opts.Status = func(msg string) { log.Println(msg) }
	}
	st, err := extracto.NewParser(opts).Parse(ctx, doc)
	if err != nil {
		return nil, cfg, err
	}
	if len(st.Cash) == 0 && len(st.Income) == 0 {
		return nil, cfg, fmt.Errorf("%s: %w", f.Arg(0), extracto.ErrNoTransactions)
	}
	return st, cfg, nil
}

var errUsage = errors.New("expecting exactly one statement file")

// fail reports err and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, errUsage) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
