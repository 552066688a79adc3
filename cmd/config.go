package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/extracto"
	"github.com/etnz/extracto/date"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	EnvFooterBand = "EXTRACTO_FOOTER_BAND"
	EnvTaxRate    = "EXTRACTO_TAX_RATE"
	EnvTaxCutoff  = "EXTRACTO_TAX_CUTOFF"
	EnvCurrency   = "EXTRACTO_CURRENCY"
	EnvYear       = "EXTRACTO_YEAR"
	EnvVerbose    = "EXTRACTO_VERBOSE"
)

// Config holds the settings read from the environment. Flags override it.
type Config struct {
	FooterBand float64
	Currency   string
	Year       int // zero means the current year
	TaxRate    decimal.Decimal
	TaxCutoff  date.Date
}

// LoadConfig reads the EXTRACTO_* variables, from the environment or from
// the optional env file. Variables already set in the environment win over
// the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		default:
			debugf("config-load file=%s", envFile)
		}
	}

	opts := extracto.DefaultOptions()
	rules := extracto.DefaultTaxRules()
	cfg := Config{
		FooterBand: opts.FooterBand,
		Currency:   opts.Currency,
		TaxRate:    rules.Rate,
		TaxCutoff:  rules.Cutoff,
	}

	var err error
	if v, ok := lookupEnv(EnvFooterBand); ok {
		if cfg.FooterBand, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvFooterBand, err)
		}
	}
	if v, ok := lookupEnv(EnvCurrency); ok {
		cfg.Currency = v
	}
	if v, ok := lookupEnv(EnvYear); ok {
		if cfg.Year, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvYear, err)
		}
	}
	if v, ok := lookupEnv(EnvTaxRate); ok {
		if cfg.TaxRate, err = decimal.NewFromString(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTaxRate, err)
		}
		if cfg.TaxRate.IsNegative() || cfg.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return cfg, fmt.Errorf("%s: rate %s out of [0, 1)", EnvTaxRate, v)
		}
	}
	if v, ok := lookupEnv(EnvTaxCutoff); ok {
		if cfg.TaxCutoff, err = date.Parse(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTaxCutoff, err)
		}
	}
	if v, ok := lookupEnv(EnvVerbose); ok && !*Verbose {
		*Verbose, _ = strconv.ParseBool(v)
	}
	return cfg, nil
}

// Options returns the parser options of the configuration.
func (c Config) Options() extracto.Options {
	opts := extracto.DefaultOptions()
	opts.FooterBand = c.FooterBand
	opts.Currency = c.Currency
	opts.Year = c.Year
	return opts
}

// Rules returns the tax rules of the configuration.
func (c Config) Rules() extracto.TaxRules {
	rules := extracto.DefaultTaxRules()
	rules.Rate = c.TaxRate
	rules.Cutoff = c.TaxCutoff
	if c.Currency != rules.Currency {
		rules.Currency = c.Currency
		rules.BuyCommission = extracto.M(rules.BuyCommission.Decimal(), c.Currency)
		rules.SellCommission = extracto.M(rules.SellCommission.Decimal(), c.Currency)
	}
	return rules
}

// lookupEnv returns the value of a variable set to a non blank value.
func lookupEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func debugf(format string, args ...any) {
	if *Verbose {
		log.Printf(format, args...)
	}
}
