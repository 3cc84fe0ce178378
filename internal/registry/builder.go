package registry

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"desergen/internal/modpath"
	"desergen/internal/naming"
	"desergen/internal/schema"
	"desergen/internal/schema/raw"
)

// Loader returns the decoded document for a requested module path.
type Loader interface {
	Load(ctx context.Context, path modpath.Path) (*raw.Document, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path modpath.Path) (*raw.Document, error)

// Load calls f(ctx, path).
func (f LoaderFunc) Load(ctx context.Context, path modpath.Path) (*raw.Document, error) {
	return f(ctx, path)
}

// Config tunes a Builder.
type Config struct {
	// Workers bounds how many schemas are loaded and resolved at once.
	Workers int
	// Namer derives type names when a document has no name override.
	Namer Namer
}

// DefaultConfig returns a config with one worker per CPU and the standard
// type-name casing.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.GOMAXPROCS(0),
		Namer:   naming.TypeName,
	}
}

// Builder assembles registries from a Loader.
type Builder struct {
	loader Loader
	cfg    Config
	logger zerolog.Logger
}

// NewBuilder creates a builder. Zero config fields fall back to
// DefaultConfig.
func NewBuilder(loader Loader, cfg Config, logger zerolog.Logger) *Builder {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}

	if cfg.Namer == nil {
		cfg.Namer = def.Namer
	}

	return &Builder{
		loader: loader,
		cfg:    cfg,
		logger: logger,
	}
}

type outcome struct {
	path modpath.Path
	info *schema.Info
	err  error
}

// Build assigns identifiers to every path, then loads and resolves each
// schema in parallel. Either every schema resolves and a registry is
// returned, or a *BuildError lists every failing schema.
func (b *Builder) Build(ctx context.Context, paths []modpath.Path) (*Registry, error) {
	lookup, err := AssignIDs(paths)
	if err != nil {
		return nil, err
	}

	requested := lookup.Paths()
	b.logger.Info().Int("count", len(requested)).Msg("identifiers assigned")

	outcomes := make([]outcome, len(requested))

	var g errgroup.Group
	g.SetLimit(b.cfg.Workers)

	for i, p := range requested {
		g.Go(func() error {
			info, err := b.buildOne(ctx, p, lookup)
			outcomes[i] = outcome{path: p, info: info, err: err}

			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("schema build interrupted: %w", err)
	}

	reg := newRegistry(len(outcomes))

	var failures []Failure

	for _, o := range outcomes {
		if o.err != nil {
			b.logger.Warn().Err(o.err).Str("path", o.path.String()).Msg("schema failed")
			failures = append(failures, Failure{Path: o.path, Err: o.err})

			continue
		}

		reg.infos[o.info.ID] = o.info
	}

	if len(failures) > 0 {
		return nil, &BuildError{Failures: failures}
	}

	b.logger.Info().Int("schemas", reg.Len()).Msg("registry built")

	return reg, nil
}

func (b *Builder) buildOne(ctx context.Context, p modpath.Path, lookup Lookup) (*schema.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := b.loader.Load(ctx, p)
	if err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}

	info, err := Assemble(lookup[p], p, doc, lookup, b.cfg.Namer)
	if err != nil {
		return nil, err
	}

	b.logger.Debug().
		Str("path", p.String()).
		Str("name", info.Name).
		Str("id", info.ID.String()).
		Msg("schema resolved")

	return info, nil
}
