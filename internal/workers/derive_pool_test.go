package workers

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexsky74/Anamneon/internal/crypto"
	"github.com/alexsky74/Anamneon/internal/logger"
)

func TestDerivationPool_MatchesDirectDerivation(t *testing.T) {
	pool := NewDerivationPool(2, 4, logger.Nop())
	pool.Run()
	defer pool.Stop()

	password := []byte("pw")
	salt := bytes.Repeat([]byte{0x5A}, crypto.CipherSaltLen)

	got, err := pool.Derive(context.Background(), password, salt, crypto.CipherKeyLen)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	want := crypto.DeriveKey(password, salt, crypto.CipherKeyLen)
	if !bytes.Equal(got, want) {
		t.Fatalf("pool derivation differs from direct derivation")
	}
}

func TestDerivationPool_ConcurrentCallers(t *testing.T) {
	pool := NewDerivationPool(2, 2, logger.Nop())
	pool.Run()
	defer pool.Stop()

	salt := bytes.Repeat([]byte{0x01}, crypto.HashSaltLen)
	want := crypto.DeriveKey([]byte("pw"), salt, 32)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := pool.Derive(context.Background(), []byte("pw"), salt, 32)
			if err != nil {
				t.Errorf("Derive error: %v", err)
				return
			}
			if !bytes.Equal(got, want) {
				t.Errorf("unexpected derivation result")
			}
		}()
	}
	wg.Wait()
}

func TestDerivationPool_CancelledContext(t *testing.T) {
	// pool is never started, so the job can only queue; the caller must
	// unblock through its context
	pool := NewDerivationPool(1, 1, logger.Nop())
	defer pool.Stop()

	// fill the queue so the next Derive blocks on submission
	pool.jobs <- deriveJob{}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := pool.Derive(ctx, []byte("pw"), []byte("salt"), 32)
	if err == nil {
		t.Fatalf("expected context error from blocked pool")
	}
}
