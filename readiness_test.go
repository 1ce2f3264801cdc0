package dbmanager

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadinessWriteOnce(t *testing.T) {
	r := NewReadiness()
	assert.False(t, r.AllReady())

	assert.True(t, r.Record(BackendRedis, nil))
	assert.False(t, r.Record(BackendRedis, errors.New("late failure")))
	assert.True(t, r.Ready(BackendRedis))

	assert.True(t, r.Record(BackendEvaluation, errors.New("dial tcp: connection refused")))
	status, ok := r.Status(BackendEvaluation)
	assert.True(t, ok)
	assert.Equal(t, "dial tcp: connection refused", status)
	assert.False(t, r.Ready(BackendEvaluation))
	assert.False(t, r.AllReady())

	_, ok = r.Status(BackendNetworkMap)
	assert.False(t, ok)
}

func TestReadinessSnapshotIsCopy(t *testing.T) {
	r := NewReadiness()
	r.Record(BackendConfiguration, nil)

	snap := r.Snapshot()
	snap[BackendConfiguration] = "tampered"
	assert.True(t, r.Ready(BackendConfiguration))
}

func TestReadinessConcurrentRecord(t *testing.T) {
	r := NewReadiness()
	var wg sync.WaitGroup
	written := make(chan bool, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			written <- r.Record(BackendEventHistory, nil)
		}()
	}
	wg.Wait()
	close(written)

	n := 0
	for ok := range written {
		if ok {
			n++
		}
	}
	assert.Equal(t, 1, n)
}
