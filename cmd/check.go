package cmd

import (
	"context"
	"flag"

	"github.com/etnz/extracto"
	"github.com/etnz/extracto/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct {
	statementFlags
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verify the running balance of a statement" }
func (*checkCmd) Usage() string {
	return `extracto check [-year <year>] <statement.pdf>

  Extracts the statement, recomputes the running balance row by row and
  lists the rows that break it, and the rows whose date could not be read.
  Exits with a failure status when the balance is broken.
`
}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, _, err := loadStatement(ctx, f, &c.statementFlags)
	if err != nil {
		return fail(err)
	}
	res := extracto.Validate(st.Cash)
	printMarkdown(renderer.CheckMarkdown(st, res))
	if res.Failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
