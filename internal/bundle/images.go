package bundle

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// HTMLImages copies every local image referenced by an <img src> in
// htmlContent into resources/ and rewrites the attribute to the
// bundle-relative path. Relative sources resolve against sourceDir.
// URLs (http, https, data, protocol-relative, file) are left untouched.
// Content without local images is returned unchanged.
func (b *Bundle) HTMLImages(htmlContent, sourceDir string) (string, error) {
	b.logger.Info("copying image resources")

	nodes, err := parseFragment(htmlContent)
	if err != nil {
		return "", fmt.Errorf("parsing slides for images: %w", err)
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	rewritten := 0
	var walkErr error
	walk(nodes, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Img {
			return true
		}
		for i, attr := range n.Attr {
			if attr.Key != "src" || !fileutil.IsLocalPath(attr.Val) {
				continue
			}
			link, err := b.copyImage(attr.Val, absSourceDir)
			if err != nil {
				walkErr = err
				return false
			}
			n.Attr[i].Val = link
			rewritten++
		}
		return true
	})
	if walkErr != nil {
		return "", walkErr
	}
	if rewritten == 0 {
		return htmlContent, nil
	}
	return renderFragment(nodes)
}

// copyImage copies src into resources/ and returns its document-relative link.
// The same source may be referenced many times; two different sources with
// the same base name conflict.
func (b *Bundle) copyImage(src, sourceDir string) (string, error) {
	decoded, err := url.PathUnescape(src)
	if err != nil {
		decoded = src
	}
	if i := strings.IndexAny(decoded, "?#"); i >= 0 {
		decoded = decoded[:i]
	}

	origin := filepath.FromSlash(decoded)
	if !filepath.IsAbs(origin) {
		origin = filepath.Join(sourceDir, origin)
	}
	origin = filepath.Clean(origin)

	name := filepath.Base(origin)
	link := path.Join(ResourcesDir, url.PathEscape(name))

	if previous, ok := b.images[name]; ok {
		if previous != origin {
			return "", fmt.Errorf("%w: %s and %s both map to %s", ErrResourceConflict, previous, origin, link)
		}
		return link, nil
	}

	if err := copy.Copy(origin, b.resources.Join(name)); err != nil {
		return "", fmt.Errorf("%w: image %s: %v", ErrResourceCopy, src, err)
	}
	b.images[name] = origin
	return link, nil
}

// parseFragment parses slide markup in a <body> context so no implicit
// <html><head><body> wrapper is added.
func parseFragment(content string) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	return html.ParseFragment(strings.NewReader(content), context)
}

func renderFragment(nodes []*html.Node) (string, error) {
	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// walk visits nodes depth-first until visit returns false.
func walk(nodes []*html.Node, visit func(*html.Node) bool) bool {
	for _, n := range nodes {
		if !visit(n) {
			return false
		}
		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}
		if !walk(children, visit) {
			return false
		}
	}
	return true
}
