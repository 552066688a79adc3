package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/extracto"
	"github.com/etnz/extracto/renderer"
	"github.com/google/subcommands"
)

// taxReport extracts the statement and runs the tax engine on its ledger.
func taxReport(ctx context.Context, f *flag.FlagSet, flags *statementFlags) (*extracto.TaxReport, error) {
	st, cfg, err := loadStatement(ctx, f, flags)
	if err != nil {
		return nil, err
	}
	return runEngine(st.Cash, cfg), nil
}

// runEngine validates the ledger balance then runs the tax engine on it.
func runEngine(ledger []extracto.Transaction, cfg Config) *extracto.TaxReport {
	res := extracto.Validate(ledger)
	if res.Failed > 0 {
		debugf("balance-check failed=%d", res.Failed)
	}
	engine := extracto.NewEngine(cfg.Rules())
	if *Verbose {
		engine.Logf = log.Printf
	}
	return engine.Run(res.Ledger)
}

type taxCmd struct {
	statementFlags
	json   bool
	query  string
	detail bool
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "compute realized gains and withholding tax, first in first out" }
func (*taxCmd) Usage() string {
	return `extracto tax [-detail] [-json | -query <jsonpath>] <statement.pdf>

  Matches every sale against the oldest purchases of the same instrument
  and reports the realized gains, the tax withheld at source, and an
  estimate of the savings tax of each year.

Usage Examples:
# Net profit of the most recent sale.
$ extracto tax -query '$.realized[0].net_profit.amount' statement.pdf
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	c.statementFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the full report as JSON.")
	f.StringVar(&c.query, "query", "", "Print the result of a JSONPath query on the JSON report.")
	f.BoolVar(&c.detail, "detail", false, "Also print the lots consumed by each sale.")
}

func (c *taxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := taxReport(ctx, f, &c.statementFlags)
	if err != nil {
		return fail(err)
	}

	switch {
	case c.query != "":
		raw, err := json.Marshal(report)
		if err != nil {
			return fail(err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fail(err)
		}
		v, err := jsonpath.Get(c.query, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", c.query, err)
			return subcommands.ExitUsageError
		}
		return printJSON(v)
	case c.json:
		return printJSON(report)
	}

	md := renderer.TaxMarkdown(report)
	if c.detail {
		md += "\n" + renderer.FIFODetailMarkdown(report)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

type incomeCmd struct {
	statementFlags
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "sum interest, dividends and bonuses by month" }
func (*incomeCmd) Usage() string {
	return `extracto income [-year <year>] <statement.pdf>

  Reports the income received, by year and month.
`
}

func (c *incomeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := taxReport(ctx, f, &c.statementFlags)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.IncomeMarkdown(report))
	return subcommands.ExitSuccess
}

type openCmd struct {
	statementFlags
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "list the positions still held at the end of the statement" }
func (*openCmd) Usage() string {
	return `extracto open <statement.pdf>

  Lists the instruments still held, with the cost of their remaining lots.
`
}

func (c *openCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := taxReport(ctx, f, &c.statementFlags)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.OpenPositionsMarkdown(report))
	return subcommands.ExitSuccess
}

func printJSON(v any) subcommands.ExitStatus {
	if err := writeJSON("", v); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
