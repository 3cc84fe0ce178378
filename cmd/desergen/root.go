package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// options are the global flags shared by every command.
type options struct {
	cfgFile   string
	verbose   bool
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	genOpts := &generateOptions{}

	root := &cobra.Command{
		Use:   "desergen",
		Short: "Generate type-safe TypeScript deserializers from YAML schemas",
		Long: `desergen turns class and enum schemas into TypeScript classes with
validating deserializers.

Schemas live under <desergen_root>/schemas, one file per module path
(a::b::user is read from a/b/user.yaml). Output is written under
<src_root>/<src_output_root>.

Examples:
  desergen                 # same as desergen generate
  desergen generate --watch
  desergen check --config desergen.hcl
  desergen dump`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts, genOpts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "",
		"config file path (.toml, .yaml, .yml, .json or .hcl; default: first desergen.* found in the working directory)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: json or console (overrides config)")

	addGenerateFlags(root, genOpts)

	root.AddCommand(
		newGenerateCmd(opts),
		newCheckCmd(opts),
		newDumpCmd(opts),
	)

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
