package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/extracto"
	"github.com/google/subcommands"
)

type parseCmd struct {
	statementFlags
	output string
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "extract the cash ledger and income table of a statement as JSON" }
func (*parseCmd) Usage() string {
	return `extracto parse [-o <file>] [-year <year>] <statement.pdf>

  Extracts the transactions of a statement and writes them as JSON. Each
  cash row is flagged "consistent" when its printed balance matches the
  previous balance plus the money in, minus the money out.

Usage Examples:
$ extracto parse -o ledger.json statement.pdf
`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	c.statementFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
}

func (c *parseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, _, err := loadStatement(ctx, f, &c.statementFlags)
	if err != nil {
		return fail(err)
	}
	res := extracto.Validate(st.Cash)
	st.Cash = res.Ledger

	if err := writeJSON(c.output, st); err != nil {
		return fail(err)
	}
	if res.Failed > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d rows break the running balance, see 'extracto check'.\n", res.Failed)
	}
	return subcommands.ExitSuccess
}

// writeJSON writes v as indented JSON to path, or to the standard output
// when path is empty.
func writeJSON(path string, v any) (err error) {
	var w io.Writer = os.Stdout
	if path != "" {
		file, ferr := os.Create(path)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := file.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("closing %s: %w", path, cerr)
			}
		}()
		w = file
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
