package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the resolved registry",
		Long: `Build the registry and print every resolved schema, sorted by
module path. References are shown as identifiers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDump(cmd, opts)
		},
	}
}

func runDump(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()

	s, err := openSession(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	reg, err := s.build(cmd.Context())
	if err != nil {
		return reportBuildError(cmd.ErrOrStderr(), err)
	}

	dumper := spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}

	for _, info := range reg.Sorted() {
		refs, err := reg.References(info.ID)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "# %s (%s)\n", info.ModPath, info.ID)

		if len(refs) > 0 {
			paths := make([]string, len(refs))
			for i, ref := range refs {
				paths[i] = ref.ModPath.String()
			}

			fmt.Fprintf(out, "# references: %s\n", strings.Join(paths, ", "))
		}

		dumper.Fdump(out, info)
		fmt.Fprintln(out)
	}

	return nil
}
