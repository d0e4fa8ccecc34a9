// Package cli parses command-line arguments into an application config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/pipeweld/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// pathList is a repeatable string flag.
type pathList []string

func (p *pathList) String() string {
	return strings.Join(*p, ", ")
}

func (p *pathList) Set(value string) error {
	*p = append(*p, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated app config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("pipeweld", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Pipeweld - assembles observability pipeline config fragments into a topology.

Usage:
  pipeweld [options] [CONFIG_PATH...]

Arguments:
  CONFIG_PATH
    Path to a config file (.toml, .yaml, .yml, .json or .hcl) or a directory
    containing such files.

Options:
`)
		flagSet.PrintDefaults()
	}

	var configFlags pathList
	flagSet.Var(&configFlags, "config", "Path to a config file or directory. May be given multiple times.")
	checkFlag := flagSet.Bool("check", false, "Validate the configuration and exit.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := append([]string(nil), configFlags...)
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Config paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No config path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	return &app.Config{
		ConfigPaths: paths,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		CheckOnly:   *checkFlag,
	}, false, nil
}
