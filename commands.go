package main

import (
	"fmt"
	"rinha/ioctx"
	"rinha/parser"
	"rinha/resolver"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func checkCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Report likely mistakes without running the program",
		Long: `Check parses a program and reports undefined variables, calls to
let-bound functions with the wrong number of arguments and explicit error
nodes. It exits non-zero when anything is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			file, source, err := parser.LoadFile(args[0])
			if err != nil {
				return err
			}
			warnings := resolver.Check(file, source)
			logger.Debug("checked program", "path", args[0], "warnings", len(warnings))
			stdout := ioctx.StdoutFromContext(cmd.Context())
			for _, w := range warnings {
				fmt.Fprintln(stdout, w)
			}
			if len(warnings) != 0 {
				return errors.Errorf("%s: %d problem(s) found", args[0], len(warnings))
			}
			return nil
		},
	}
}

func astCmd(flags *Flags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the syntax tree of a program",
		Long: `Ast loads a program (source text or a JSON/YAML tree) and prints its
syntax tree. Formats: json and yaml use the interchange schema, pretty
dumps the Go values, source prints the canonical program text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(cmd, flags); err != nil {
				return err
			}
			file, _, err := parser.LoadFile(args[0])
			if err != nil {
				return err
			}
			stdout := ioctx.StdoutFromContext(cmd.Context())
			switch format {
			case "json":
				return parser.EncodeJSON(stdout, file)
			case "yaml":
				return parser.EncodeYAML(stdout, file)
			case "pretty":
				_, err := fmt.Fprintf(stdout, "%# v\n", pretty.Formatter(file))
				return err
			case "source":
				_, err := fmt.Fprintln(stdout, file.String())
				return err
			}
			return errors.Errorf("unknown format %q (want json, yaml, pretty or source)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml, pretty or source")
	return cmd
}
