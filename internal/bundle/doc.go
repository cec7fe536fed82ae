// Package bundle owns the output directory of a build.
//
// Layout:
//
//	{output}/
//	├── .gitignore          # "*", the directory is a build artifact
//	├── index.html          # written by the pipeline
//	├── resources/          # recreated on every build
//	│   ├── {plugin}/       # dist tree and generated files of one plugin
//	│   └── {image}         # local images referenced by slides
//	└── cache/              # persisted across builds
//	    └── {plugin}/
//
// Plugins register resources by (plugin, dist) namespace; each namespace is
// copied once by Populate no matter how many files were listed in it.
package bundle
