// Package config provides the editing options the core consults.
//
// The core only reads options through the Provider interface. Options
// come from built-in defaults, an optional TOML file, and VICORE_*
// environment variables, in increasing precedence. A Store holds the
// live values and can be reloaded when the file changes on disk.
//
// Example file:
//
//	tabstop = 4
//	shiftwidth = 4
//	expandtab = true
//	ignorecase = true
//	smartcase = true
//	virtualedit = "all"
package config
