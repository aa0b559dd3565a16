package di

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// recursiveMutex is a mutex the owning goroutine may lock again. Every
// Lock must be paired with an Unlock on the same goroutine.
type recursiveMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (m *recursiveMutex) Lock() {
	id := goid.Get()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

func (m *recursiveMutex) Unlock() {
	if m.owner.Load() != goid.Get() {
		panic("di: unlock of registry lock not held by this goroutine")
	}
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}
