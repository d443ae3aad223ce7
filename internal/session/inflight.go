package session

import "sync"

// inFlight tracks identities with a spin currently in progress. Unlike a
// per-key mutex, acquisition never blocks: an overlapping spin for the same
// identity is rejected immediately.
type inFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{keys: make(map[string]struct{})}
}

// TryAcquire reserves the key, returning false if it is already held.
func (f *inFlight) TryAcquire(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, held := f.keys[key]; held {
		return false
	}
	f.keys[key] = struct{}{}
	return true
}

func (f *inFlight) Release(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
}
