/*
	The `config` package reads calcgraph's settings from the environment.

	Every setting has a default, so an empty environment is a working one.
	`LoadDotenv` may be called first to pull variables from a `.env` file;
	variables already set in the real environment win.
*/
package config

import (
	"os"
	"strings"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/joho/godotenv"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/lib/errcat"
	"go.polydawn.net/calcgraph/save"
)

const (
	EnvEndpoint       = "CALCGRAPH_ENDPOINT"
	EnvCalculatorBase = "CALCGRAPH_CALCULATOR_BASE"
	EnvTimeout        = "CALCGRAPH_TIMEOUT"
	EnvLogLevel       = "CALCGRAPH_LOG_LEVEL"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = log15.LvlInfo
)

/*
	LoadDotenv loads variables from the named files (".env" if none are
	named) into the process environment.  Files that don't exist are
	skipped; files that exist but don't parse are an `api.ErrUsage`.
*/
func LoadDotenv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, fn := range filenames {
		if _, err := os.Stat(fn); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(fn); err != nil {
			return errcat.Errorf(api.ErrUsage, "cannot load %s: %s", fn, err)
		}
	}
	return nil
}

// GetEndpoint returns where save requests are posted.  Set by `CALCGRAPH_ENDPOINT`.
func GetEndpoint() string {
	return getOr(EnvEndpoint, save.DefaultEndpoint)
}

// GetCalculatorBase returns the base of public graph URLs.  Set by `CALCGRAPH_CALCULATOR_BASE`.
func GetCalculatorBase() string {
	return getOr(EnvCalculatorBase, save.DefaultCalculatorBase)
}

/*
	GetTimeout returns the HTTP timeout for a save, parsed from
	`CALCGRAPH_TIMEOUT` as a Go duration (e.g. "30s", "1m30s").
	Zero means no timeout.  Negative or unparsable values are an
	`api.ErrUsage`.
*/
func GetTimeout() (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(EnvTimeout))
	if s == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errcat.Errorf(api.ErrUsage, "%s: %s", EnvTimeout, err)
	}
	if d < 0 {
		return 0, errcat.Errorf(api.ErrUsage, "%s: must not be negative", EnvTimeout)
	}
	return d, nil
}

// GetLogLevel returns the log15 level named by `CALCGRAPH_LOG_LEVEL` ("debug", "info", "warn", "error", "crit").
func GetLogLevel() (log15.Lvl, error) {
	s := strings.TrimSpace(os.Getenv(EnvLogLevel))
	if s == "" {
		return DefaultLogLevel, nil
	}
	lvl, err := log15.LvlFromString(strings.ToLower(s))
	if err != nil {
		return 0, errcat.Errorf(api.ErrUsage, "%s: %s", EnvLogLevel, err)
	}
	return lvl, nil
}

func getOr(key, dflt string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return dflt
}
