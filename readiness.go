package dbmanager

import (
	"maps"
	"sync"
)

// Logical backend names used as readiness keys.
const (
	BackendPseudonyms         = "PseudonymsDB"
	BackendTransactionHistory = "TransactionHistoryDB"
	BackendConfiguration      = "ConfigurationDB"
	BackendNetworkMap         = "NetworkMapDB"
	BackendEvaluation         = "EvaluationDB"
	BackendEventHistory       = "EventHistoryDB"
	BackendRedis              = "Redis"
)

// StatusOK is the readiness value of a healthy backend.
const StatusOK = "Ok"

// Readiness records the probe outcome of each composed backend. Every
// Manager owns its own registry. An entry is written once; later records
// for the same backend are ignored.
type Readiness struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewReadiness returns an empty registry.
func NewReadiness() *Readiness {
	return &Readiness{entries: make(map[string]string)}
}

// Record stores the outcome for backend. A nil err records StatusOK.
// It reports whether the entry was written.
func (r *Readiness) Record(backend string, err error) bool {
	status := StatusOK
	if err != nil {
		status = err.Error()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[backend]; exists {
		return false
	}
	r.entries[backend] = status
	return true
}

// Snapshot returns a copy of every entry.
func (r *Readiness) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.entries)
}

// Status returns the recorded entry for backend.
func (r *Readiness) Status(backend string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.entries[backend]
	return s, ok
}

// Ready reports whether backend was recorded as StatusOK.
func (r *Readiness) Ready(backend string) bool {
	s, ok := r.Status(backend)
	return ok && s == StatusOK
}

// AllReady reports whether every recorded backend is StatusOK. An empty
// registry is not ready.
func (r *Readiness) AllReady() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.entries) == 0 {
		return false
	}
	for _, s := range r.entries {
		if s != StatusOK {
			return false
		}
	}
	return true
}
