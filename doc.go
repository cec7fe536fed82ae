// Package md2slides turns a Markdown document into a self-contained HTML
// slide deck.
//
// # Quick Start
//
// Build a deck once:
//
//	res, err := md2slides.Build(ctx, "talk.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", res.Output)
//
// The output directory holds index.html plus a resources/ tree with the
// stylesheets, scripts and images the page links to.
//
// # Document Format
//
// Slides are separated by lines of three dashes. An optional YAML front
// matter block opens the document:
//
//	---
//	title: My Talk
//	lang: fr
//	output-dir: public
//	---
//	# First slide
//	---
//	# Second slide
//
// Front matter keys configure the deck (title, lang, theme, output,
// output-dir, font-size, font-family, slide-width) and the plugins
// (code-theme, description, date, wrapping-qna, rustc-timeout,
// rustc-cache-salt, rustc-allows, rustc-edition, cargo-deps).
//
// # Build Pipeline
//
// Each build goes through these stages:
//
//  1. Split the document into front matter and slides
//  2. Load the plugins named by the phase map and collect their resources
//  3. Extend the slide list (subslides, title and closing slides)
//  4. Render each slide: before-phase rewrites on Markdown, Goldmark,
//     after-phase rewrites on HTML
//  5. Assemble the page from the deck template and theme, copy resources
//  6. Run cleanup hooks
//
// Plugins are grouped in phases: external, resource, extend, before, after
// and cleanup. A document may choose its own phase map:
//
//	---
//	plugins:
//	  resource: [global, controls]
//	  extend: [subslides]
//	  before: [tables]
//	---
//
// Without one, every built-in plugin runs in its usual phases.
//
// # Configuration
//
// Use functional options to customize a Builder:
//
//	b, err := md2slides.NewBuilder("talk.md",
//	    md2slides.WithOutputDir("site"),
//	    md2slides.WithAssetPath("/path/to/custom/assets"),
//	    md2slides.WithRunnerTimeout(10*time.Second),
//	    md2slides.WithLogger(logger),
//	)
//
// # Watch Mode
//
// Builder.Watch rebuilds on every change of the input until the context is
// cancelled:
//
//	err := b.Watch(ctx, func(res *md2slides.Result, err error) {
//	    if err != nil {
//	        log.Print(err)
//	    }
//	})
//
// # Custom Assets
//
// Override the built-in themes and page template with a directory:
//
//	assets/
//	├── styles/
//	│   └── corporate.css
//	└── templates/
//	    └── deck.html
//
// # Rust Blocks
//
// The rustc plugin compiles and runs ```rust fenced blocks with cargo and
// shows the output under the code. Results are cached in the output
// directory; a block marked "// ignore" is not run, "// norun" is only
// type-checked. cargo must be on PATH for documents that contain such blocks.
package md2slides
