// Package extracto turns brokerage account statements into a transaction
// ledger, and computes the realized gains, open positions and income of
// that ledger.
//
// The statements are PDF documents without any table structure: only
// positioned pieces of text. The parser rebuilds the tables from them:
//   - Section location: multilingual start and end markers delimit the cash
//     ledger and the money market fund table. A table may span several
//     pages, so the state is carried from one page to the next.
//   - Header detection: the header row of a table gives the x boundaries of
//     its columns. Boundaries remain valid until a later page redefines them.
//   - Row assembly: fragments below the header are grouped into rows by
//     vertical gaps, then bucketed into columns by x.
//   - Field normalization: localized dates, amounts and types are parsed;
//     trade descriptions are split into instrument code, name and quantity.
//
// Validate checks the running balance of the ledger, and the Engine matches
// sales against purchases first in, first out to compute gains and the tax
// withheld at source.
//
// This package serves as the foundational logic for the `extracto`
// command-line tool.
package extracto
