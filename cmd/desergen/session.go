package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"desergen/internal/config"
	"desergen/internal/diagnostic"
	"desergen/internal/loader"
	"desergen/internal/logging"
	"desergen/internal/registry"
)

// session is one loaded configuration with its logger.
type session struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// openSession loads the config, builds the logger and checks that the
// schemas directory exists.
func openSession(opts *options, logOut io.Writer) (*session, error) {
	path := opts.cfgFile
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, err
		}

		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}

	format := cfg.LogFormat
	if opts.logFormat != "" {
		format = opts.logFormat
	}

	logger, err := logging.New(level, format, logOut)
	if err != nil {
		return nil, err
	}

	dir := cfg.SchemasDir()
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("schemas directory %s does not exist", dir)
	}

	return &session{
		cfg:    cfg,
		logger: logger.With().Str("config", cfg.Path()).Logger(),
	}, nil
}

// build resolves every configured schema.
func (s *session) build(ctx context.Context) (*registry.Registry, error) {
	paths, err := s.cfg.ModulePaths()
	if err != nil {
		return nil, err
	}

	builder := registry.NewBuilder(
		loader.NewDir(s.cfg.SchemasDir()),
		registry.Config{Workers: s.cfg.Workers},
		s.logger,
	)

	return builder.Build(ctx, paths)
}

// reportBuildError prints per-schema diagnostics for a BuildError and
// returns a short summary error. Other errors are returned unchanged.
func reportBuildError(w io.Writer, err error) error {
	var buildErr *registry.BuildError
	if !errors.As(err, &buildErr) {
		return err
	}

	diags := buildErr.Diagnostics()
	printDiagnostics(w, diags)

	return fmt.Errorf("%d of the requested schemas are invalid", len(diags.Errors))
}

var (
	checkMark = color.GreenString("✓")
	crossMark = color.RedString("✗")
)

func printDiagnostics(w io.Writer, d diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		var label string

		switch diag.Severity {
		case diagnostic.SeverityError:
			label = color.RedString("error")
		case diagnostic.SeverityWarning:
			label = color.YellowString("warning")
		default:
			label = color.CyanString("info")
		}

		fmt.Fprintf(w, "  %s %s\n", label, diag)
	}
}
