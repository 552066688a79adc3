package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// RunExtension attempts to find and execute an external extracto-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The extension inherits the environment, plus the EXTRACTO_* variables of
// the loaded configuration.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "extracto-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		debugf("extension-lookup name=%s err=%v", name, err)
		return false, 0
	}

	cfg, err := LoadConfig(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvFooterBand+"="+strconv.FormatFloat(cfg.FooterBand, 'f', -1, 64))
	cmd.Env = append(cmd.Env, EnvCurrency+"="+cfg.Currency)
	cmd.Env = append(cmd.Env, EnvTaxRate+"="+cfg.TaxRate.String())
	cmd.Env = append(cmd.Env, EnvTaxCutoff+"="+cfg.TaxCutoff.String())
	if cfg.Year != 0 {
		cmd.Env = append(cmd.Env, EnvYear+"="+strconv.Itoa(cfg.Year))
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		log.Printf("extension-run name=%s err=%v", name, err)
		return true, 1
	}
	return true, 0
}
