// Package pipeline turns a markdown document into a slide deck.
//
// A Driver build walks a fixed sequence of states:
//
//	Idle → ParsedInput → ParsedMetadata → PluginsLoaded → Rendered → Bundled → Done
//
// and moves to Failed on the first fatal error. Each build:
//   - splits the document into front matter and slide bodies
//   - freezes the metadata, merged with driver overrides
//   - loads and routes the configured plugins through their phases
//   - runs extend-phase plugins over the slide list
//   - renders every slide with the Converter, which applies before-phase
//     rewrites to markdown and after-phase rewrites to HTML
//   - copies local images into the bundle and assembles the page from the
//     deck template
//   - populates the bundle, writes the page and runs cleanup plugins
//
// A Watcher reruns the whole sequence whenever the input file changes.
package pipeline
