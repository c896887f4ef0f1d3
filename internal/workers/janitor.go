package workers

import (
	"os"
	"sync"
	"time"

	"github.com/alexsky74/Anamneon/internal/logger"
)

// Janitor deletes transient plaintext files after a bounded delay.
//
// Opening an encrypted file for external viewing decrypts it into a
// temporary location; the janitor guarantees that copy disappears again:
// after the scheduled delay during normal operation, or immediately on
// shutdown so no plaintext outlives the process.
type Janitor struct {
	logger *logger.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

// NewJanitor constructs a Janitor.
func NewJanitor(log *logger.Logger) *Janitor {
	return &Janitor{
		logger:  log,
		pending: make(map[string]*time.Timer),
	}
}

// Run implements [Worker]. The janitor is timer-driven, so Run only logs
// readiness; Schedule can be called before or after it.
func (j *Janitor) Run() {
	j.logger.Debug().Msg("temp file janitor ready")
}

// Schedule arranges for path to be removed after delay. Scheduling the same
// path again resets its timer.
func (j *Janitor) Schedule(path string, delay time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.stopped {
		// shutdown already in progress; remove right away
		j.remove(path)
		return
	}

	if timer, ok := j.pending[path]; ok {
		timer.Stop()
	}

	j.pending[path] = time.AfterFunc(delay, func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.pending, path)
		j.remove(path)
	})
}

// Stop cancels all timers and removes every pending file immediately.
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopped = true
	for path, timer := range j.pending {
		timer.Stop()
		delete(j.pending, path)
		j.remove(path)
	}
}

// remove deletes the file, tolerating copies the user already deleted.
// Callers hold j.mu.
func (j *Janitor) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		j.logger.Warn().Err(err).Str("path", path).Msg("failed to remove temp plaintext file")
		return
	}
	j.logger.Debug().Str("path", path).Msg("removed temp plaintext file")
}
