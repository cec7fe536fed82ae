package rustc

import (
	"context"
	"embed"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Name is the plugin identity used in phase maps.
const Name = "rustc"

//go:embed dist locales.yaml
var root embed.FS

// Patterns of the before and after rewrites, and of the block markers.
var (
	CodeBlockPattern   = regexp.MustCompile("```rust([\\s\\S]*?)```")
	PlaceholderPattern = regexp.MustCompile(`rustc-cache\(([0-9a-f]+)\)`)

	noShowPattern = regexp.MustCompile(`(?m)^#(?: .*)?\n`)
	hiddenPattern = regexp.MustCompile(`(?m)^#(?: |$)`)
	ignorePattern = regexp.MustCompile(`(?m)^// *ignore`)
	norunPattern  = regexp.MustCompile(`(?m)^// *norun`)
)

// escapedFence lets a block show a nested fence: \`\`\` becomes ```.
const escapedFence = "\\`\\`\\`"

// Definition returns the plugin definition running the real cargo.
func Definition() plugin.Definition {
	return NewDefinition(CommandExecutor{})
}

// NewDefinition returns the plugin definition running cargo through exec.
func NewDefinition(exec Executor) plugin.Definition {
	return plugin.Definition{
		Name: Name,
		Root: root,
		Init: func(meta deck.Metadata, caps *plugin.Capabilities) (*plugin.Descriptor, error) {
			return initWith(meta, caps, exec)
		},
	}
}

// compiler turns code blocks into displayed code plus cached output.
type compiler struct {
	runner    *runner
	cache     *resultCache
	project   *project
	salt      string
	copyLabel string
	group     singleflight.Group
}

func initWith(meta deck.Metadata, caps *plugin.Capabilities, exec Executor) (*plugin.Descriptor, error) {
	cfg, err := ParseConfig(meta)
	if err != nil {
		return nil, err
	}
	logger := caps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	proj, err := scaffold(caps.Bundle.Resources, cfg)
	if err != nil {
		return nil, err
	}
	cache, err := openCache(caps.Bundle.Cache, logger)
	if err != nil {
		return nil, err
	}

	c := &compiler{
		runner: &runner{
			exec:    exec,
			dir:     proj.root.Path(),
			timeout: cfg.Timeout,
			logger:  logger,
		},
		cache:     cache,
		project:   proj,
		salt:      cfg.Salt,
		copyLabel: caps.I18n("copy", "Copy"),
	}

	return &plugin.Descriptor{
		Resources: &plugin.Resources{Links: []string{"rustc.css", "rustc.js"}},
		Before:    &plugin.Rewrite{Pattern: CodeBlockPattern, Replace: c.replaceBlock},
		After:     &plugin.Rewrite{Pattern: PlaceholderPattern, Replace: c.replacePlaceholder},
		Cleanup:   proj.cleanup,
	}, nil
}

// replaceBlock emits the displayed fence, the output placeholder when there
// is output, and the copyable source.
func (c *compiler) replaceBlock(ctx context.Context, m plugin.Match) (string, bool, error) {
	code := m.Group(1)
	show := strings.TrimSpace(noShowPattern.ReplaceAllString(code, ""))
	source := strings.TrimSpace(hiddenPattern.ReplaceAllString(code, ""))
	source = strings.ReplaceAll(source, escapedFence, "```")

	fence := "```rust\n" + show + "\n```"
	if ignorePattern.MatchString(source) {
		return fence, true, nil
	}

	hash := sourceHash(c.salt, source)
	result, err := c.result(ctx, hash, source)
	if err != nil {
		return "", false, err
	}

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString("\n")
	if result != "" {
		fmt.Fprintf(&b, "<pre><div class=\"rustc hljs\">rustc-cache(%s)</div></pre>\n", hash)
	}
	fmt.Fprintf(&b, "<div class=\"btn rustc-copy\" data-sha=\"%s\">%s</div>\n\n", hash, html.EscapeString(c.copyLabel))
	fmt.Fprintf(&b, "<pre class=\"rustc-source\" data-sha=\"%s\">%s</pre>\n", hash, html.EscapeString(copySource(source)))
	return b.String(), true, nil
}

// result returns the output for source, running cargo at most once per hash.
func (c *compiler) result(ctx context.Context, hash, source string) (string, error) {
	if r, ok := c.cache.get(hash); ok {
		return r, nil
	}
	v, err, _ := c.group.Do(hash, func() (any, error) {
		if r, ok := c.cache.get(hash); ok {
			return r, nil
		}

		bin := "main_" + hash
		if err := c.project.writeSource(bin, source); err != nil {
			return nil, err
		}
		raw, res, err := c.runner.run(ctx, bin, norunPattern.MatchString(source))
		if err != nil {
			return nil, err
		}

		r := formatOutput(raw, c.project.root.Path())
		if res == unstarted {
			c.cache.remember(hash, r)
			return r, nil
		}
		if err := c.cache.put(hash, r); err != nil {
			return nil, err
		}
		return r, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// replacePlaceholder swaps a placeholder for its output. Unknown hashes are
// left alone.
func (c *compiler) replacePlaceholder(_ context.Context, m plugin.Match) (string, bool, error) {
	r, ok := c.cache.get(m.Group(1))
	return r, ok, nil
}

// copySource drops a leading comment line, which holds block markers.
func copySource(source string) string {
	if !strings.HasPrefix(source, "//") {
		return source
	}
	if i := strings.IndexByte(source, '\n'); i >= 0 {
		return source[i+1:]
	}
	return ""
}
