// Package workers provides the background workers of the archive process:
// the bounded key-derivation pool that keeps CPU-bound PBKDF2 off the
// request path, and the janitor that deletes transient plaintext copies.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

// Worker is the interface implemented by every background worker.
// Run starts the worker's execution; implementations spawn their
// goroutines internally and return immediately.
type Worker interface {
	Run()
}
