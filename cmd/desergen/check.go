package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"desergen/internal/diagnostic"
	"desergen/internal/gen"
	"desergen/internal/registry"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate schemas without writing output",
		Long: `Resolve every configured schema and report problems.

Checks:
  - Every schema file loads and decodes
  - Every reference names a requested schema
  - Map keys and optionals are well formed
  - Enum defaults name a declared variant
  - Output can be generated

Warnings (exit status stays zero):
  - Type names or output files shared by several schemas
  - Validation metadata naming undeclared fields or variants`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}
}

func runCheck(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()

	s, err := openSession(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Checking %d schemas in %s...\n\n", len(s.cfg.Schemas), s.cfg.SchemasDir())

	var diags diagnostic.Diagnostics

	reg, err := s.build(cmd.Context())
	if err != nil {
		var buildErr *registry.BuildError
		if !errors.As(err, &buildErr) {
			return err
		}

		diags = buildErr.Diagnostics()
	} else {
		diags = registry.Lint(reg)
		diags.Merge(generateDiagnostics(reg))
	}

	printDiagnostics(out, diags)

	if diags.HasErrors() {
		fmt.Fprintf(out, "\n  %s %d errors, %d warnings\n", crossMark, len(diags.Errors), len(diags.Warnings))
		return fmt.Errorf("check failed with %d errors", len(diags.Errors))
	}

	fmt.Fprintf(out, "\n  %s %d schemas valid, %d warnings\n", checkMark, reg.Len(), len(diags.Warnings))

	return nil
}

// generateDiagnostics renders the registry without writing anything and
// reports a failure as an error diagnostic.
func generateDiagnostics(reg *registry.Registry) diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	if _, err := gen.NewGenerator(gen.DefaultGeneratorConfig()).Generate(reg); err != nil {
		d.AddError(diagnostic.CodeGenerateFailed, err.Error(), "", "")
	}

	return d
}
