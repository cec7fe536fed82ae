// Package deck holds the presentation data model: slides, the frozen
// document metadata parsed from front matter, and the typed settings view
// the rest of the build reads from it.
//
// A source document looks like:
//
//	---
//	title: Demo
//	lang: en
//	---
//	# One
//	---
//	# Two
//
// The text before the first delimiter is discarded when blank, the next
// segment is the front matter, and every following segment is a slide body.
package deck
