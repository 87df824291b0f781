// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that loads sweeps, builds
// the sinks and dispatches every job, decoupled from any specific entrypoint
// like a CLI.
package app
