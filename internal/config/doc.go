// Package config resolves the tabby configuration directory and loads the
// files inside it.
//
// The directory (default ~/.tabby) holds:
//
//	autoplug      plugin paths loaded at startup, one per line
//	config.toml   optional editor settings
//	latest.log    log of the current session, truncated on start
//
// Settings are layered: built-in defaults, then config.toml, then TABBY_*
// environment variables. Command line flags are applied by the caller.
package config
