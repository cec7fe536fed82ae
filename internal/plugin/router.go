package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"

	"github.com/alnah/go-md2slides/internal/bundle"
	"github.com/alnah/go-md2slides/internal/deck"
)

// Extension is one converter contribution: either a goldmark extension
// (PhaseExternal) or a text rewrite (PhaseBefore on markdown, PhaseAfter on
// HTML).
type Extension struct {
	Plugin   string
	Phase    Phase
	External goldmark.Extender
	Rewrite  *Rewrite
}

// Apply runs a rewrite extension over text. External extensions return text
// unchanged.
func (e Extension) Apply(ctx context.Context, text string) (string, error) {
	if e.Rewrite == nil {
		return text, nil
	}
	out, err := e.Rewrite.Apply(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: plugin %s (%s): %w", ErrRewrite, e.Plugin, e.Phase, err)
	}
	return out, nil
}

// Routes is the outcome of routing loaded plugins through the phases.
type Routes struct {
	// Extensions is the ordered list handed to the converter.
	Extensions []Extension
	// Extend holds extend-phase plugins in configured order.
	Extend []*Loaded
	// Cleanup holds cleanup-phase plugins in configured order.
	Cleanup []*Loaded

	logger *slog.Logger
}

// Router sorts plugin capabilities into phases.
type Router struct {
	registry *Registry
	loader   *Loader
	bundle   *bundle.Bundle
	logger   *slog.Logger
}

// NewRouter creates a Router loading plugins through loader and registering
// resources with b.
func NewRouter(registry *Registry, loader *Loader, b *bundle.Bundle, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router{registry: registry, loader: loader, bundle: b, logger: logger}
}

// Route validates cfg, then loads every configured plugin and classifies its
// descriptor phase by phase. Configuration errors are reported before any
// plugin is initialized. A plugin enrolled in a phase it has no capability
// for is logged as a warning and skipped for that phase.
func (r *Router) Route(cfg PhaseConfig) (*Routes, error) {
	if err := cfg.Validate(r.registry); err != nil {
		return nil, err
	}

	routes := &Routes{logger: r.logger}
	for _, phase := range Phases {
		for _, name := range cfg[phase] {
			p, err := r.loader.Load(name)
			if err != nil {
				return nil, err
			}
			used, err := r.route(routes, phase, p)
			if err != nil {
				return nil, err
			}
			if !used {
				r.logger.Warn("plugin enrolled for a phase it does not implement",
					"plugin", name, "phase", string(phase), "missing", phase.capability())
			}
		}
	}
	return routes, nil
}

func (r *Router) route(routes *Routes, phase Phase, p *Loaded) (bool, error) {
	d := p.Descriptor
	switch phase {
	case PhaseExternal:
		if d.External == nil {
			return false, nil
		}
		routes.Extensions = append(routes.Extensions, Extension{Plugin: p.Name, Phase: phase, External: d.External})
	case PhaseResource:
		if d.Resources == nil || len(d.Resources.Links) == 0 {
			return false, nil
		}
		if err := r.registerResources(p); err != nil {
			return false, err
		}
	case PhaseExtend:
		if d.Extend == nil {
			return false, nil
		}
		routes.Extend = append(routes.Extend, p)
	case PhaseBefore, PhaseAfter:
		rw := d.Before
		if phase == PhaseAfter {
			rw = d.After
		}
		if rw == nil || rw.Pattern == nil || rw.Replace == nil {
			return false, nil
		}
		routes.Extensions = append(routes.Extensions, Extension{Plugin: p.Name, Phase: phase, Rewrite: rw})
	case PhaseCleanup:
		if d.Cleanup == nil {
			return false, nil
		}
		routes.Cleanup = append(routes.Cleanup, p)
	default:
		_, err := ParsePhase(string(phase))
		return false, err
	}
	return true, nil
}

func (r *Router) registerResources(p *Loaded) error {
	res := p.Descriptor.Resources
	root := p.Root
	if res.Lookup != nil {
		root = res.Lookup
	}
	for _, link := range res.Links {
		err := r.bundle.Register(bundle.Resource{
			Name:   link,
			Plugin: p.Name,
			Root:   root,
			Dist:   res.Dist,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Rewrites returns the rewrite extensions of phase, in order.
func (rt *Routes) Rewrites(phase Phase) []Extension {
	var out []Extension
	for _, e := range rt.Extensions {
		if e.Phase == phase && e.Rewrite != nil {
			out = append(out, e)
		}
	}
	return out
}

// Externals returns the goldmark extensions, in order.
func (rt *Routes) Externals() []goldmark.Extender {
	var out []goldmark.Extender
	for _, e := range rt.Extensions {
		if e.External != nil {
			out = append(out, e.External)
		}
	}
	return out
}

// ExtendSlides runs extend-phase plugins in configured order, each seeing
// the list produced by the previous one.
func (rt *Routes) ExtendSlides(ctx context.Context, slides []*deck.Slide) ([]*deck.Slide, error) {
	if len(rt.Extend) == 0 {
		return slides, nil
	}

	rt.logger.Info("extending slides", "plugins", len(rt.Extend))

	for _, p := range rt.Extend {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := p.Descriptor.Extend(ctx, slides)
		if err != nil {
			return nil, fmt.Errorf("plugin %s (extend): %w", p.Name, err)
		}
		if next != nil {
			slides = next
		}
	}
	return slides, nil
}

// RunCleanup calls every cleanup hook. All hooks run; their errors are joined.
func (rt *Routes) RunCleanup() error {
	if len(rt.Cleanup) == 0 {
		return nil
	}

	rt.logger.Info("cleanup", "plugins", len(rt.Cleanup))

	var errs []error
	for _, p := range rt.Cleanup {
		if err := p.Descriptor.Cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("plugin %s (cleanup): %w", p.Name, err))
		}
	}
	return errors.Join(errs...)
}
