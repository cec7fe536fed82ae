// Package rustc compiles and runs the Rust code blocks of a deck and shows
// the compiler or program output under each block.
//
// Blocks live in a cargo project inside the plugin's resources directory.
// Lines starting with "# " are compiled but not displayed; a line holding a
// lone "#" is dropped from the display too. A first line "// ignore" skips
// execution and "// norun" type-checks without running.
//
// Output is cached by a hash of the executed source and the optional
// rustc-cache-salt metadata, in cache.json and logs/result_<hash>.log under
// the plugin's cache directory. A cached block never starts cargo again;
// change the salt or build with --no-cache to invalidate.
//
// Before conversion each block becomes the displayed code fence followed by
// a rustc-cache(<hash>) placeholder, which the after phase replaces with the
// HTML output. The placeholder keeps the output away from the markdown
// converter.
package rustc
