package lock

import (
	"sync"
	"testing"
	"time"
)

func TestSameKeySerializes(t *testing.T) {
	locks := NewKeyed()

	// Unsynchronized counter: the race detector and the final count both
	// catch a broken lock.
	counter := 0
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("car:shared")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	locks := NewKeyed()

	unlockA := locks.Lock("car:a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("car:b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on a different key blocked behind car:a")
	}
}

func TestUnlockReleasesKey(t *testing.T) {
	locks := NewKeyed()

	unlock := locks.Lock("booking:x")
	unlock()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("booking:x")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("key still held after unlock")
	}
}
