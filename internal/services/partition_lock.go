package services

import (
	"sync"
	"time"
)

// PartitionLock serializes work per string key. Bookings use the key
// "routeID|travelDate" so that admissions and cancellations on the same
// departure run one at a time while unrelated departures proceed freely.
type PartitionLock struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	ch   chan struct{}
	refs int
}

// NewPartitionLock creates an empty lock table.
func NewPartitionLock() *PartitionLock {
	return &PartitionLock{entries: make(map[string]*lockEntry)}
}

// Acquire takes the lock for key, waiting at most wait. Returns false
// when the lock could not be taken in time.
func (l *PartitionLock) Acquire(key string, wait time.Duration) bool {
	l.mu.Lock()
	entry := l.entries[key]
	if entry == nil {
		entry = &lockEntry{ch: make(chan struct{}, 1)}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case entry.ch <- struct{}{}:
		return true
	case <-timer.C:
		l.drop(key, entry)
		return false
	}
}

// Release frees the lock for key. Must only be called after a
// successful Acquire for the same key.
func (l *PartitionLock) Release(key string) {
	l.mu.Lock()
	entry := l.entries[key]
	l.mu.Unlock()
	if entry == nil {
		return
	}

	<-entry.ch
	l.drop(key, entry)
}

// drop decrements the reference count and removes the table entry once
// nobody holds or waits on it, so the table stays bounded by the number
// of partitions in flight.
func (l *PartitionLock) drop(key string, entry *lockEntry) {
	l.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
	l.mu.Unlock()
}

// PartitionKey builds the lock key for a route departure.
func PartitionKey(routeID, travelDate string) string {
	return routeID + "|" + travelDate
}
