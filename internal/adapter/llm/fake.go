package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"ragnews/internal/port"
)

// Fake is an in-process completer for tests. With no Handler set it derives
// a deterministic completion from a digest of the request, so identical
// requests always produce identical output and differing seeds differ.
type Fake struct {
	mu      sync.Mutex
	Handler func(req port.CompletionRequest) (string, error)
	Calls   []port.CompletionRequest
}

func (f *Fake) Complete(_ context.Context, req port.CompletionRequest) (string, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, req)
	handler := f.Handler
	f.mu.Unlock()

	if handler != nil {
		return handler(req)
	}

	seed := "sampled"
	if req.Seed != nil {
		seed = fmt.Sprintf("%d", *req.Seed)
	}
	digest := sha256.Sum256([]byte(req.System + "\x00" + req.User + "\x00" + seed))
	return "fake-" + hex.EncodeToString(digest[:8]), nil
}

func (f *Fake) ModelName() string {
	return "fake"
}

// CallCount returns how many completions have been requested.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
