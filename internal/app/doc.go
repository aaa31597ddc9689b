// Package app wires the pieces of the compositor core into a runnable
// application: it configures logging, loads a composition from disk,
// validates the graph, and evaluates parameters.
//
// The App owns its logger and registry so multiple instances can run in
// one process without sharing global state.
package app
