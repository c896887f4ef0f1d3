// Package http implements the HTTP transport layer of the archive.
//
// It exposes route wiring, request handlers, and middleware of the local
// REST API consumed by the interactive surface. Cross-cutting concerns such
// as authentication, request tracing, and access logging are handled in
// this package before requests are delegated to the service layer.
//
// The API is loopback-only by convention: plaintext request bodies never
// leave the machine.
package http
