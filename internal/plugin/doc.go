// Package plugin defines how slide plugins contribute to a build.
//
// A plugin is a compiled-in Definition: a name, a file tree holding its
// static resources and optional locales.yaml, and an Init function. Init
// receives the frozen document metadata and a Capabilities value scoped to
// the plugin, and returns a Descriptor listing what the plugin provides.
//
// The Router walks a phase configuration in the fixed order
//
//	external → resource → extend → before → after → cleanup
//
// and turns each descriptor field into work for the pipeline: goldmark
// extensions and text rewrites for the converter, resources for the bundle,
// slide-list transforms and cleanup hooks for the driver. The Loader calls
// Init at most once per plugin per build, however many phases list it.
package plugin
