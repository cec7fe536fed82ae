package bundle

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/otiai10/copy"
	"golang.org/x/sync/errgroup"
)

// Names of the fixed entries of the output directory.
const (
	ResourcesDir  = "resources"
	CacheDir      = "cache"
	gitignoreName = ".gitignore"
)

// maxCopyWorkers bounds concurrent namespace copies in Populate.
const maxCopyWorkers = 4

// Instance is the pair of directories a plugin owns in a bundle.
type Instance struct {
	// Resources is emptied when the instance is created and shipped with the deck.
	Resources Dir
	// Cache survives across builds.
	Cache Dir
}

type namespace struct {
	key       key
	root      fs.FS
	resources []Resource
}

// Bundle tracks the output directory of one build.
type Bundle struct {
	dir        Dir
	resources  Dir
	cache      Dir
	logger     *slog.Logger
	instances  map[string]Instance
	namespaces map[key]*namespace
	order      []key
	images     map[string]string
	populated  bool
}

// Option configures a Bundle.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	freshCache bool
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFreshCache wipes the cache subtree instead of reusing it.
func WithFreshCache(fresh bool) Option {
	return func(o *options) { o.freshCache = fresh }
}

// New prepares outputDir: the directory itself and cache/ are kept,
// resources/ is recreated empty.
func New(outputDir string, opts ...Option) (*Bundle, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	o.logger.Debug("creating bundle", "dir", outputDir)

	dir, err := OpenCacheDir(outputDir)
	if err != nil {
		return nil, err
	}
	resources, err := dir.Fresh(ResourcesDir)
	if err != nil {
		return nil, err
	}
	openCache := dir.Cache
	if o.freshCache {
		openCache = dir.Fresh
	}
	cache, err := openCache(CacheDir)
	if err != nil {
		return nil, err
	}
	if _, err := dir.WriteFile(gitignoreName, []byte("*")); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateDir, err)
	}

	return &Bundle{
		dir:        dir,
		resources:  resources,
		cache:      cache,
		logger:     o.logger,
		instances:  make(map[string]Instance),
		namespaces: make(map[key]*namespace),
		images:     make(map[string]string),
	}, nil
}

// Dir returns the output directory.
func (b *Bundle) Dir() Dir { return b.dir }

// ResourcesDir returns the resources subtree.
func (b *Bundle) ResourcesDir() Dir { return b.resources }

// CacheDir returns the cache subtree.
func (b *Bundle) CacheDir() Dir { return b.cache }

// PluginInstance returns the directories owned by plugin name. The first call
// empties the resources directory; later calls return the same handles.
func (b *Bundle) PluginInstance(name string) (Instance, error) {
	if inst, ok := b.instances[name]; ok {
		return inst, nil
	}
	if err := ValidateName(name); err != nil || strings.Contains(name, "/") {
		return Instance{}, fmt.Errorf("%w: plugin name %q", ErrInvalidResource, name)
	}

	res, err := b.resources.Fresh(name)
	if err != nil {
		return Instance{}, err
	}
	cache, err := b.cache.Cache(name)
	if err != nil {
		return Instance{}, err
	}

	inst := Instance{Resources: res, Cache: cache}
	b.instances[name] = inst
	return inst, nil
}

// Register records r for Populate and HTMLLinks. Resources sharing a
// (plugin, dist) pair coalesce into one copy operation; registering the same
// name twice is a no-op.
func (b *Bundle) Register(r Resource) error {
	if err := ValidateName(r.Name); err != nil {
		return fmt.Errorf("plugin %s: %w", r.Plugin, err)
	}
	if err := ValidateName(r.dist()); err != nil {
		return fmt.Errorf("plugin %s: dist: %w", r.Plugin, err)
	}
	if r.Root == nil {
		return fmt.Errorf("%w: plugin %s has no file tree for %q", ErrInvalidResource, r.Plugin, r.Name)
	}

	k := r.key()
	ns, ok := b.namespaces[k]
	if !ok {
		ns = &namespace{key: k, root: r.Root}
		b.namespaces[k] = ns
		b.order = append(b.order, k)
	}
	for _, existing := range ns.resources {
		if existing.Name == r.Name {
			return nil
		}
	}
	ns.resources = append(ns.resources, r)
	return nil
}

// Namespaces returns the number of distinct copy operations Populate will run.
func (b *Bundle) Namespaces() int {
	return len(b.namespaces)
}

// Populate copies every registered dist tree into resources/{plugin}/ and
// checks that every listed resource ended up in place. Namespaces of
// different plugins are copied concurrently; namespaces of the same plugin
// share a target and are copied in registration order.
func (b *Bundle) Populate(ctx context.Context) error {
	if b.populated {
		return ErrAlreadyPopulated
	}
	b.populated = true

	b.logger.Info("populating bundle", "namespaces", len(b.namespaces))

	byPlugin := make(map[string][]*namespace)
	var plugins []string
	for _, k := range b.order {
		if _, ok := byPlugin[k.plugin]; !ok {
			plugins = append(plugins, k.plugin)
		}
		byPlugin[k.plugin] = append(byPlugin[k.plugin], b.namespaces[k])
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxCopyWorkers)
	for _, plugin := range plugins {
		group := byPlugin[plugin]
		g.Go(func() error {
			for _, ns := range group {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := b.copyNamespace(ns); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (b *Bundle) copyNamespace(ns *namespace) error {
	target := b.resources.Join(ns.key.plugin)

	if _, err := fs.Stat(ns.root, ns.key.dist); err != nil {
		return fmt.Errorf("%w: plugin %s: %s: %v", ErrResourceCopy, ns.key.plugin, ns.key.dist, err)
	}

	err := copy.Copy(ns.key.dist, target, copy.Options{
		FS: ns.root,
		// Embedded trees are read-only; the next build must be able to wipe them.
		PermissionControl: copy.AddPermission(0o200),
	})
	if err != nil {
		return fmt.Errorf("%w: plugin %s: %s: %v", ErrResourceCopy, ns.key.plugin, ns.key.dist, err)
	}

	for _, r := range ns.resources {
		if _, err := os.Stat(b.resources.Join(r.Plugin, r.Name)); err != nil {
			return fmt.Errorf("%w: plugin %s: %s/%s not found", ErrResourceCopy, r.Plugin, ns.key.dist, r.Name)
		}
	}
	return nil
}

// HTMLLinks returns the stylesheet and script tags of every registered
// resource, sorted so that output is byte-for-byte reproducible.
func (b *Bundle) HTMLLinks() string {
	var tags []string
	for _, k := range b.order {
		for _, r := range b.namespaces[k].resources {
			if tag := r.HTMLLink(); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return strings.Join(tags, "\n")
}
