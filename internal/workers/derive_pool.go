package workers

import (
	"context"

	"github.com/alexsky74/Anamneon/internal/crypto"
	"github.com/alexsky74/Anamneon/internal/logger"
)

// DerivationPool is a bounded worker pool for PBKDF2 key derivation. It
// implements [crypto.Deriver].
//
// A derivation at 100k iterations costs a noticeable slice of CPU time;
// running it inline would serialize a slow login or a bulk export behind
// every other pending request. The pool caps concurrent derivations at its
// worker count and lets callers abandon a queued job through their context.
type DerivationPool struct {
	jobs   chan deriveJob
	quit   chan struct{}
	size   int
	logger *logger.Logger
}

type deriveJob struct {
	password []byte
	salt     []byte
	keyLen   int
	result   chan []byte
}

// NewDerivationPool constructs a pool with size workers and a queue of
// queueLen pending jobs. Both values are clamped to at least 1.
func NewDerivationPool(size, queueLen int, log *logger.Logger) *DerivationPool {
	if size < 1 {
		size = 1
	}
	if queueLen < 1 {
		queueLen = 1
	}

	return &DerivationPool{
		jobs:   make(chan deriveJob, queueLen),
		quit:   make(chan struct{}),
		size:   size,
		logger: log,
	}
}

// Run implements [Worker]. It starts the pool's goroutines and returns.
func (p *DerivationPool) Run() {
	p.logger.Debug().Int("workers", p.size).Msg("starting key derivation pool")

	for i := 0; i < p.size; i++ {
		go p.worker()
	}
}

// Stop terminates the pool. Jobs still queued are dropped; their callers
// unblock through their own contexts or the closed quit channel.
func (p *DerivationPool) Stop() {
	close(p.quit)
}

// Derive implements [crypto.Deriver]. It queues the computation and waits
// for the result, honoring ctx while the pool is busy.
func (p *DerivationPool) Derive(ctx context.Context, password, salt []byte, keyLen int) ([]byte, error) {
	job := deriveJob{
		password: password,
		salt:     salt,
		keyLen:   keyLen,
		result:   make(chan []byte, 1),
	}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.quit:
		return nil, context.Canceled
	}

	select {
	case derived := <-job.result:
		return derived, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.quit:
		return nil, context.Canceled
	}
}

func (p *DerivationPool) worker() {
	for {
		select {
		case job := <-p.jobs:
			job.result <- crypto.DeriveKey(job.password, job.salt, job.keyLen)
		case <-p.quit:
			return
		}
	}
}
