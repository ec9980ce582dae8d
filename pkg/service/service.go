package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/uiregistry/pkg/detect"
	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/naming"
	"github.com/matzehuels/uiregistry/pkg/observability"
	"github.com/matzehuels/uiregistry/pkg/registry"
)

// State is the outcome of a resolution.
type State int

const (
	StateNotFound State = iota
	StateRegistry
	StateFallback
)

func (s State) String() string {
	switch s {
	case StateRegistry:
		return "registry"
	case StateFallback:
		return "fallback"
	default:
		return "not_found"
	}
}

// Defaults applied by New for zero Config fields.
const (
	DefaultNamespace = "ui"
	DefaultExtension = "tsx"
	DefaultName      = "uiregistry"
)

// TracerName identifies spans started by the service.
const TracerName = "github.com/matzehuels/uiregistry/pkg/service"

// Config configures a Service.
type Config struct {
	// SourceDir is read for identifiers missing from the registry.
	// Leave empty to disable the fallback path.
	SourceDir string
	// Suffix of component files in SourceDir. Defaults to registry.DefaultSuffix.
	Suffix string

	// Namespace and Extension shape the install path
	// "components/<Namespace>/<id>.<Extension>".
	Namespace string
	Extension string

	// Name is reported in the registry index.
	Name string

	// Detector is shared with the build. Defaults to detect.New().
	Detector *detect.Detector

	// Coalesce merges concurrent fallback reads of the same identifier.
	Coalesce bool

	Logger *log.Logger
	Hooks  observability.ResolveHooks
}

// Service resolves identifiers against an immutable registry with a live
// filesystem fallback.
type Service struct {
	reg    *registry.Registry
	cfg    Config
	layout layout
	tracer trace.Tracer
	group  singleflight.Group
}

// New creates a service over reg. A nil registry behaves as an empty one.
func New(reg *registry.Registry, cfg Config) *Service {
	if reg == nil {
		reg = registry.Empty()
	}
	if cfg.Suffix == "" {
		cfg.Suffix = registry.DefaultSuffix
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.Detector == nil {
		cfg.Detector = detect.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Service{
		reg:    reg,
		cfg:    cfg,
		layout: layout{namespace: cfg.Namespace, extension: cfg.Extension},
		tracer: otel.Tracer(TracerName),
	}
}

// Registry returns the registry the service answers from.
func (s *Service) Registry() *registry.Registry { return s.reg }

func (s *Service) hooks() observability.ResolveHooks {
	if s.cfg.Hooks != nil {
		return s.cfg.Hooks
	}
	return observability.Resolve()
}

// Normalize strips an optional ".json" suffix from a request slug.
func Normalize(slug string) string {
	return strings.TrimSuffix(slug, ".json")
}

// Resolve returns the document for slug. Unresolvable slugs return
// StateNotFound and an error with code NOT_FOUND.
//
// Documents returned from coalesced fallback reads may be shared between
// callers and must not be modified.
func (s *Service) Resolve(ctx context.Context, slug string) (*Document, State, error) {
	start := time.Now()
	id := Normalize(slug)

	ctx, span := s.tracer.Start(ctx, "uiregistry.resolve",
		trace.WithAttributes(attribute.String("uiregistry.id", id)))
	defer span.End()

	doc, state, err := s.resolve(ctx, id)

	span.SetAttributes(attribute.String("uiregistry.state", state.String()))
	if err != nil && !errors.Is(err, errors.ErrCodeNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.hooks().OnResolve(ctx, id, state.String(), time.Since(start))
	return doc, state, err
}

func (s *Service) resolve(ctx context.Context, id string) (*Document, State, error) {
	if e, ok := s.reg.Lookup(id); ok {
		return s.layout.fromEntry(e), StateRegistry, nil
	}

	// Only the fallback touches the filesystem, so only it needs a safe id.
	if err := naming.Validate(id); err != nil {
		return nil, StateNotFound, errors.Wrap(errors.ErrCodeNotFound, err, "component %q not found", id)
	}
	if s.cfg.SourceDir == "" {
		return nil, StateNotFound, errors.New(errors.ErrCodeNotFound, "component %q not found", id)
	}

	var (
		doc *Document
		err error
	)
	if s.cfg.Coalesce {
		var v any
		v, err, _ = s.group.Do(id, func() (any, error) { return s.fallback(id) })
		doc, _ = v.(*Document)
	} else {
		doc, err = s.fallback(id)
	}
	if err != nil {
		return nil, StateNotFound, err
	}
	return doc, StateFallback, nil
}

func (s *Service) fallback(id string) (*Document, error) {
	path := filepath.Join(s.cfg.SourceDir, id+s.cfg.Suffix)
	data, err := os.ReadFile(path)
	if err != nil {
		s.cfg.Logger.Debug("fallback read failed", "id", id, "path", path, "err", err)
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "component %q not found", id)
	}
	s.cfg.Logger.Debug("resolved from source", "id", id, "path", path)
	return s.layout.fromSource(s.cfg.Detector, id, string(data)), nil
}
