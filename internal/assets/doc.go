// Package assets provides the page template and theme stylesheets of a
// generated slide deck.
//
// Assets live in layers. The embedded layer ships the deck template and the
// built-in themes; a directory layer lets users add themes or replace the
// template. A Stack reads through its layers in order and falls back to the
// next one only when an asset is missing:
//
//	{dir}/
//	├── styles/
//	│   └── {name}.css           # deck themes, selected by the "theme" key
//	└── templates/
//	    └── {name}.html          # page templates (deck.html)
//
// Directory layers are read through os.Root, so neither ".." nor a symlink
// can reach a file outside the directory.
package assets
