package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"desergen/internal/config"
	"desergen/internal/gen"
	"desergen/internal/loader"
	"desergen/internal/registry"
	"desergen/internal/watch"
)

type generateOptions struct {
	watch  bool
	dryRun bool
}

func newGenerateCmd(opts *options) *cobra.Command {
	genOpts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate TypeScript deserializers",
		Long: `Build the registry from every configured schema and write one
TypeScript module per schema plus the shared runtime module.

Nothing is written if any schema fails to resolve.

Examples:
  desergen generate
  desergen generate --dry-run
  desergen generate --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts, genOpts)
		},
	}

	addGenerateFlags(cmd, genOpts)

	return cmd
}

func addGenerateFlags(cmd *cobra.Command, genOpts *generateOptions) {
	cmd.Flags().BoolVar(&genOpts.watch, "watch", false, "regenerate whenever a schema or the config file changes")
	cmd.Flags().BoolVar(&genOpts.dryRun, "dry-run", false, "list the files that would be written without writing them")
}

func runGenerate(cmd *cobra.Command, opts *options, genOpts *generateOptions) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	run := func(ctx context.Context) error {
		return generateOnce(ctx, out, errOut, opts, genOpts.dryRun)
	}

	if !genOpts.watch {
		return run(cmd.Context())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchLoop(ctx, opts, errOut, run)
}

// watchLoop re-runs run on every change to the schemas or the config file.
// When a config change moves the schemas directory, watching restarts on
// the new directory.
func watchLoop(ctx context.Context, opts *options, errOut io.Writer, run watch.RunFunc) error {
	s, err := openSession(opts, errOut)
	if err != nil {
		return err
	}

	if err := run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("initial run failed, waiting for changes")
	}

	for {
		watchCtx, cancel := context.WithCancel(ctx)

		dir, cfgPath := s.cfg.SchemasDir(), s.cfg.Path()

		w := watch.New(watch.Options{
			Dirs:       []string{dir},
			Files:      []string{cfgPath},
			Extensions: loader.Extensions,
		}, func(ctx context.Context) error {
			err := run(ctx)

			if next, moved := schemasDirMoved(cfgPath, dir); moved {
				s.logger.Info().Str("from", dir).Str("to", next).Msg("schemas directory moved, restarting watch")
				cancel()
			}

			return err
		}, s.logger)

		err := w.Run(watchCtx)

		cancel()

		if err != nil {
			return err
		}

		if ctx.Err() != nil {
			return nil
		}

		if s, err = openSession(&options{cfgFile: cfgPath, verbose: opts.verbose, logFormat: opts.logFormat}, errOut); err != nil {
			return err
		}
	}
}

// schemasDirMoved reloads the config at cfgPath and reports whether it now
// names an existing schemas directory other than current.
func schemasDirMoved(cfgPath, current string) (string, bool) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return "", false
	}

	next := cfg.SchemasDir()
	if next == current {
		return "", false
	}

	if st, err := os.Stat(next); err != nil || !st.IsDir() {
		return "", false
	}

	return next, true
}

// generateOnce runs one full batch: load the config, build the registry,
// render every file and write the output tree.
func generateOnce(ctx context.Context, out, errOut io.Writer, opts *options, dryRun bool) error {
	s, err := openSession(opts, errOut)
	if err != nil {
		return err
	}

	reg, err := s.build(ctx)
	if err != nil {
		return reportBuildError(errOut, err)
	}

	for _, w := range registry.Lint(reg).Warnings {
		s.logger.Warn().Str("schema", w.Schema).Str("code", w.Code).Msg(w.Message)
	}

	files, err := gen.NewGenerator(gen.DefaultGeneratorConfig()).Generate(reg)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	outDir := s.cfg.OutputDir()

	if dryRun {
		for _, f := range files {
			fmt.Fprintln(out, filepath.Join(outDir, filepath.FromSlash(f.Filename)))
		}

		return nil
	}

	if err := gen.WriteFiles(files, outDir); err != nil {
		return err
	}

	removed, err := gen.PruneFiles(files, outDir)
	if err != nil {
		return err
	}

	for _, name := range removed {
		s.logger.Debug().Str("file", name).Msg("removed stale module")
	}

	s.logger.Info().
		Int("files", len(files)).
		Int("removed", len(removed)).
		Str("dir", outDir).
		Msg("files written")

	return nil
}
