package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/artpar/helpers"
	"github.com/artpar/helpers/internal/shell/env"
)

// =============================================================================
// CLI State
// =============================================================================

// cli holds what every command shares once the root command has run.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	output     string

	cfg     *Config
	logger  *slog.Logger
	helpers *helpers.Helpers
}

func newCLI(stdin io.Reader, stdout, stderr io.Writer) *cli {
	return &cli{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "helpers",
		Short:         "Text, collection, date, URL, file, environment and random helpers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to config file (yaml, json or toml)")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "", "Output format: text, json or yaml")

	root.AddCommand(
		c.slugifyCommand(),
		c.truncateCommand(),
		c.camelCommand(),
		c.flattenCommand(),
		c.keyExistsCommand(),
		c.dateCommand(),
		c.nowCommand(),
		c.urlCommand(),
		c.fileSizeCommand(),
		c.envCommand(),
		c.randomCommand(),
		c.serveCommand(),
		c.versionCommand(),
	)
	return root
}

// setup loads configuration and builds the shared Helpers.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return &CommandError{Op: "LoadConfig", Err: err, ExitCode: ExitConfigError}
	}
	c.cfg = cfg
	c.logger = SetupLogger(cfg, c.stderr)

	if !cmd.Flags().Changed("output") {
		c.output = cfg.Output.Format
	}
	if _, err := parseOutputFormat(c.output); err != nil {
		return &CommandError{Op: "setup", Err: err, ExitCode: ExitUsageError}
	}

	loc, err := cfg.Date.Location()
	if err != nil {
		return &CommandError{Op: "setup", Err: err, ExitCode: ExitConfigError}
	}

	src, err := env.NewSource(cfg.Env.File)
	if err != nil {
		return &CommandError{Op: "setup", Err: err, ExitCode: ExitConfigError}
	}

	c.helpers = helpers.New(helpers.Options{
		Location: loc,
		Env:      src,
	})

	c.logger.Debug("configuration loaded",
		"command", cmd.Name(),
		"config", c.configPath,
		"output", c.output,
		"timezone", loc.String(),
		"env_file", cfg.Env.File,
	)
	return nil
}

// report prints err with its hints and returns the exit code.
func (c *cli) report(err error) int {
	code := exitCode(err)
	if c.logger != nil {
		c.logger.Debug("command failed", "error", err, "exit_code", code)
	}

	fmt.Fprintf(c.stderr, "error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(c.stderr, "hint: %s\n", hint)
	}
	return code
}

// print renders a command result in the selected output format.
func (c *cli) print(v any) error {
	format, err := parseOutputFormat(c.output)
	if err != nil {
		return err
	}
	return writeResult(c.stdout, format, v)
}

// joinArgs rebuilds text that the shell split on spaces.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
