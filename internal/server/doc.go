// Package server wires and runs the local HTTP server of the archive.
//
// It provides startup, signal handling, and graceful shutdown for the
// loopback API the interactive surface talks to.
package server
