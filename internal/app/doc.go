// Package app wires the editor together and runs its main loop.
//
// Bootstrap order: configuration directory, log file, config.toml and
// environment, editor context with the native commands, shell runner,
// plugin host and auto-loaded plugins, then the file named on the command
// line. The loop is single threaded:
//
//	drain plugin messages -> render -> wait for input -> handle it -> ...
//
// Other goroutines only post to the plugin mailbox, which wakes the
// blocking wait through Backend.Wake.
package app
