// Package export prints a built deck to PDF through headless Chrome.
//
// The deck page is opened with the "print" query parameter, which makes the
// navigation script lay every slide out on its own page.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2slides/internal/hints"
	"github.com/alnah/go-md2slides/internal/process"
)

// Sentinel errors for PDF export.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWritePDF       = errors.New("cannot write PDF")
)

// DefaultTimeout bounds page load when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// PrintQuery is the query string that switches the deck to print layout.
const PrintQuery = "print"

// Page dimensions in inches: a 16:9 widescreen slide, no margins.
const (
	pageWidthInches  = 13.333
	pageHeightInches = 7.5
)

// Renderer turns a page URL into PDF bytes. It lets tests run without a browser.
type Renderer interface {
	Render(ctx context.Context, pageURL string) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ Renderer = (*RodRenderer)(nil)

// Exporter writes PDF files next to built decks.
type Exporter struct {
	renderer Renderer
	logger   *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRenderer replaces the headless Chrome renderer.
func WithRenderer(r Renderer) Option {
	return func(e *Exporter) { e.renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Exporter. The browser starts on the first export.
func New(timeout time.Duration, opts ...Option) *Exporter {
	e := &Exporter{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	if e.renderer == nil {
		e.renderer = NewRodRenderer(timeout)
	}
	return e
}

// Export renders the deck page htmlPath to pdfPath and returns the absolute
// path written.
func (e *Exporter) Export(ctx context.Context, htmlPath, pdfPath string) (string, error) {
	pageURL, err := PrintURL(htmlPath)
	if err != nil {
		return "", err
	}
	e.logger.Info("exporting pdf", "page", htmlPath)

	data, err := e.renderer.Render(ctx, pageURL)
	if err != nil {
		return "", err
	}

	out, err := filepath.Abs(pdfPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil { // #nosec G306 -- PDF is a public artifact
		return "", fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	e.logger.Info("pdf", "path", out, "bytes", len(data))
	return out, nil
}

// Close releases the browser.
func (e *Exporter) Close() error {
	return e.renderer.Close()
}

// PDFPath returns the PDF path for a deck page: same directory, same base
// name, ".pdf" extension.
func PDFPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".pdf"
}

// PrintURL builds the file:// URL of a local page in print layout.
func PrintURL(htmlPath string) (string, error) {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: PrintQuery,
	}
	if !strings.HasPrefix(u.Path, "/") {
		// Windows drive paths.
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}

// RodRenderer renders pages with go-rod.
// Rod downloads Chromium on first run if no browser is found.
type RodRenderer struct {
	timeout time.Duration

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRodRenderer creates a RodRenderer. A zero timeout uses DefaultTimeout.
func NewRodRenderer(timeout time.Duration) *RodRenderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *RodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// The sandbox fails in CI runners and most containers.
	if hints.System().NoSandbox() || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	r.browser = browser
	return nil
}

// Render opens pageURL in headless Chrome and prints it.
func (r *RodRenderer) Render(ctx context.Context, pageURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// Close shuts the browser down and kills what is left of its process tree.
func (r *RodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.browser, r.launcher = nil, nil
	return err
}

// printOptions lays out one slide per landscape page with backgrounds.
func printOptions() *proto.PagePrintToPDF {
	zero := 0.0
	width, height := pageWidthInches, pageHeightInches
	return &proto.PagePrintToPDF{
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &zero,
		MarginBottom:    &zero,
		MarginLeft:      &zero,
		MarginRight:     &zero,
		PrintBackground: true,
	}
}
