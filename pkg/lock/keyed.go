package lock

import "sync"

// Keyed hands out one mutex per key, so operations on different keys run in
// parallel while operations on the same key serialize. Used to serialize
// booking creation per car and lifecycle transitions per booking.
//
// Mutexes are kept for the life of the process. The key space (cars and
// bookings actually being operated on) is small enough that no eviction is
// needed.
type Keyed struct {
	mus sync.Map // key -> *sync.Mutex
}

func NewKeyed() *Keyed {
	return &Keyed{}
}

// Lock blocks until the key's mutex is held and returns the matching unlock.
func (k *Keyed) Lock(key string) (unlock func()) {
	v, _ := k.mus.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
