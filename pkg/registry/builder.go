package registry

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uiregistry/pkg/detect"
	"github.com/matzehuels/uiregistry/pkg/docmeta"
	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/escape"
	"github.com/matzehuels/uiregistry/pkg/naming"
	"github.com/matzehuels/uiregistry/pkg/observability"
	"github.com/matzehuels/uiregistry/pkg/store"
)

// DefaultSuffix is the filename suffix of component sources.
const DefaultSuffix = ".tsx"

// Builder scans a directory of component sources and produces a [Registry].
// The zero value is not usable; SourceDir is required.
type Builder struct {
	// SourceDir is scanned non-recursively.
	SourceDir string
	// Suffix selects component files. Defaults to DefaultSuffix.
	Suffix string
	// Detector infers npm dependencies. Defaults to detect.New().
	Detector *detect.Detector
	// Logger receives one progress line per component. Defaults to log.Default().
	Logger *log.Logger
	// Hooks defaults to the globally registered build hooks.
	Hooks observability.BuildHooks
}

// Result describes a completed build.
type Result struct {
	Registry *Registry
	Artifact []byte
	Checksum string
	Location string
	Duration time.Duration
}

func (b *Builder) suffix() string {
	if b.Suffix == "" {
		return DefaultSuffix
	}
	return b.Suffix
}

func (b *Builder) detector() *detect.Detector {
	if b.Detector == nil {
		return detect.New()
	}
	return b.Detector
}

func (b *Builder) logger() *log.Logger {
	if b.Logger == nil {
		return log.Default()
	}
	return b.Logger
}

func (b *Builder) hooks() observability.BuildHooks {
	if b.Hooks == nil {
		return observability.Build()
	}
	return b.Hooks
}

// Build reads every component in SourceDir and returns the registry.
// Any read failure aborts the whole build.
func (b *Builder) Build(ctx context.Context) (*Registry, error) {
	hooks := b.hooks()
	start := time.Now()
	hooks.OnBuildStart(ctx, b.SourceDir)

	reg, err := b.build(ctx)
	hooks.OnBuildComplete(ctx, reg.Len(), time.Since(start), err)
	return reg, err
}

func (b *Builder) build(ctx context.Context) (*Registry, error) {
	dirents, err := os.ReadDir(b.SourceDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBuildAbort, err, "read source directory %s", b.SourceDir)
	}

	det := b.detector()
	logger := b.logger()
	suffix := b.suffix()
	hooks := b.hooks()

	var entries []Entry
	for _, de := range dirents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !de.Type().IsRegular() {
			continue
		}
		id, ok := naming.Identifier(de.Name(), suffix)
		if !ok {
			continue
		}
		if err := naming.Validate(id); err != nil {
			logger.Warn("skipping component", "file", de.Name(), "err", errors.UserMessage(err))
			continue
		}

		e, err := b.entry(det, id, filepath.Join(b.SourceDir, de.Name()))
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)

		logger.Info("processed component", "id", id, "deps", len(e.Dependencies))
		hooks.OnComponent(ctx, id, len(e.Dependencies))
	}

	return New(entries)
}

func (b *Builder) entry(det *detect.Detector, id, path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, errors.Wrap(errors.ErrCodeBuildAbort, err, "read component %s", path)
	}
	src := string(data)

	e := Entry{
		Name:         id,
		DisplayName:  naming.DisplayName(id),
		Description:  docmeta.Description(src, id),
		Dependencies: det.Detect(src),
		Source:       escape.Escape(src),
	}
	if block, ok := docmeta.Parse(src); ok {
		e.RegistryDependencies = block.RegistryDependencies()
	}

	sc, err := ReadSidecar(b.SourceDir, id)
	if err != nil {
		return Entry{}, err
	}
	if sc != nil {
		if sc.RegistryDependencies != nil {
			e.RegistryDependencies = sc.RegistryDependencies
		}
		e.Tailwind = sc.Tailwind
		e.CSSVars = sc.CSSVars
	}
	return e, nil
}

// Run builds the registry, renders the artifact and saves it to w.
// Nothing is written unless every step before the save succeeds.
func (b *Builder) Run(ctx context.Context, w store.Writer) (*Result, error) {
	start := time.Now()
	reg, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}

	artifact, err := Render(reg, RenderOptions{SourceDir: b.SourceDir})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBuildAbort, err, "render artifact")
	}
	if err := w.Save(ctx, artifact); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBuildAbort, err, "write artifact to %s", w.Location())
	}

	return &Result{
		Registry: reg,
		Artifact: artifact,
		Checksum: store.Hash(artifact),
		Location: w.Location(),
		Duration: time.Since(start),
	}, nil
}
