package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/artpar/helpers"
	"github.com/artpar/helpers/internal/core/collection"
	"github.com/artpar/helpers/internal/shell/decode"
)

// =============================================================================
// Text Commands
// =============================================================================

func (c *cli) slugifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slugify TEXT...",
		Short: "Convert text to a lowercase, hyphen-delimited slug",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.print(helpers.Slugify(joinArgs(args)))
		},
	}
}

func (c *cli) truncateCommand() *cobra.Command {
	var (
		length int
		suffix string
	)
	cmd := &cobra.Command{
		Use:   "truncate TEXT...",
		Short: "Cut text to a maximum length, appending a suffix when cut",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				length = c.cfg.Truncate.Length
			}
			if !cmd.Flags().Changed("suffix") {
				suffix = c.cfg.Truncate.Suffix
			}
			return c.print(helpers.Truncate(joinArgs(args), length, suffix))
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", helpers.DefaultTruncateLength, "Maximum length in bytes")
	cmd.Flags().StringVar(&suffix, "suffix", helpers.DefaultTruncateSuffix, "Suffix appended when text is cut")
	return cmd
}

func (c *cli) camelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "camel TEXT...",
		Short: "Join hyphen, underscore or space separated words into camelCase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.print(helpers.CamelCase(joinArgs(args)))
		},
	}
}

// =============================================================================
// Collection Commands
// =============================================================================

func (c *cli) flattenCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "flatten [FILE]",
		Short: "Print the leaf values of a nested document in depth-first order",
		Long: "Reads a JSON, YAML or TOML document from FILE, or from stdin when FILE is\n" +
			"omitted or \"-\", and prints every leaf value.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(args, format)
			if err != nil {
				return err
			}
			return c.print(helpers.Flatten(doc))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json, yaml or toml (default from extension, json for stdin)")
	return cmd
}

func (c *cli) keyExistsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "key-exists KEY [FILE]",
		Short: "Report whether KEY appears at any depth of a nested document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(args[1:], format)
			if err != nil {
				return err
			}
			return c.print(helpers.KeyExistsRecursive(args[0], doc))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json, yaml or toml (default from extension, json for stdin)")
	return cmd
}

// readDocument decodes the file named by args, or stdin.
func (c *cli) readDocument(args []string, formatName string) (any, error) {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}

	var format decode.Format
	var err error
	switch {
	case formatName != "":
		format, err = decode.ParseFormat(formatName)
	case path == "-":
		format = decode.FormatJSON
	default:
		format, err = decode.FormatFromPath(path)
	}
	if err != nil {
		return nil, errors.WithHint(err, "pass --format json, yaml or toml")
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &CommandError{Op: "read " + path, Err: err, ExitCode: ExitIOError}
	}

	c.logger.Debug("decoding document", "path", path, "format", string(format), "bytes", len(data))
	return decode.Decode(data, format)
}

// =============================================================================
// Date Commands
// =============================================================================

func (c *cli) dateCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "date TEXT...",
		Short: "Parse date text and format it with PHP date() characters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = c.cfg.Date.Format
			}
			s, err := c.helpers.FormatDate(joinArgs(args), format)
			if err != nil {
				return err
			}
			return c.print(s)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", helpers.DefaultDateFormat, "PHP date() format")
	return cmd
}

func (c *cli) nowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = c.cfg.Date.Format
			}
			d, err := c.helpers.CarbonDate("")
			if err != nil {
				return err
			}
			return c.print(d.Format(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", helpers.DefaultDateFormat, "PHP date() format")
	return cmd
}

// =============================================================================
// URL Commands
// =============================================================================

func (c *cli) urlCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "url BASE [KEY=VALUE]...",
		Short: "Append an encoded query string to BASE",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			return c.print(helpers.URLWithParams(args[0], params))
		},
	}
}

// parseParams turns KEY=VALUE arguments into an ordered map.
// A repeated key collects its values into a list.
func parseParams(args []string) (collection.Map, error) {
	params := collection.Map{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, usageError("url", "parameter %q is not KEY=VALUE", arg)
		}

		addParam(&params, key, value)
	}
	return params, nil
}

// addParam appends value under key, turning a repeated key into a list.
func addParam(params *collection.Map, key, value string) {
	prev, exists := params.Get(key)
	switch {
	case !exists:
		params.Set(key, value)
	case isList(prev):
		params.Set(key, append(prev.([]any), value))
	default:
		params.Set(key, []any{prev, value})
	}
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}

// =============================================================================
// File Commands
// =============================================================================

func (c *cli) fileSizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "filesize PATH...",
		Short: "Print the size of files in human-readable units",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				s, err := c.helpers.FileSizeFormatted(args[0])
				if err != nil {
					return err
				}
				return c.print(s)
			}

			sizes := collection.Map{}
			for _, path := range args {
				s, err := c.helpers.FileSizeFormatted(path)
				if err != nil {
					return err
				}
				sizes.Set(path, s)
			}
			return c.print(sizes)
		},
	}
}

// =============================================================================
// Environment Commands
// =============================================================================

func (c *cli) envCommand() *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "env KEY",
		Short: "Print an environment value, converting true, false, empty and null",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fallback any
			if cmd.Flags().Changed("default") {
				fallback = def
			}
			return c.print(c.helpers.EnvValue(args[0], fallback))
		},
	}
	cmd.Flags().StringVarP(&def, "default", "d", "", "Value printed when KEY is unset")
	return cmd
}

// =============================================================================
// Random Commands
// =============================================================================

func (c *cli) randomCommand() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random hex string",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				length = c.cfg.Random.Length
			}
			s, err := c.helpers.GenerateRandomString(length)
			if err != nil {
				return err
			}
			return c.print(s)
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", helpers.DefaultRandomLength, "Length of the string; odd lengths lose one character")
	return cmd
}

// =============================================================================
// Version
// =============================================================================

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(c.stdout, "helpers %s (built %s)\n", Version, BuildTime)
			return err
		},
	}
}
