// Package arena implements a bump-pointer allocator for cartridge-lifetime
// scratch memory: mapper register scratch and four-screen nametable backing
// pages. Allocations live as long as the current cartridge; there is no
// per-object free, only a full Reset on cart-unload.
package arena

import "fmt"

// Arena is a fixed-capacity bump allocator.
type Arena struct {
	mem    []byte
	offset int
}

// New creates an Arena with the given byte capacity.
func New(capacity int) *Arena {
	return &Arena{mem: make([]byte, capacity)}
}

// Alloc carves n zeroed bytes off the arena. It panics with a descriptive
// message on overflow: cart-load is expected to recover and report failure
// rather than let auxiliary-memory exhaustion corrupt emulator state (see
// the resource-exhaustion error taxonomy).
func (a *Arena) Alloc(n int) []byte {
	if a.offset+n > len(a.mem) {
		panic(fmt.Sprintf("arena: out of space (want %d, have %d)", n, len(a.mem)-a.offset))
	}
	b := a.mem[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	return b
}

// TryAlloc is the non-panicking form used by cart-load so a resource
// exhaustion failure can be reported as a boolean without mutating state.
func (a *Arena) TryAlloc(n int) ([]byte, bool) {
	if a.offset+n > len(a.mem) {
		return nil, false
	}
	b := a.mem[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	return b, true
}

// Reset returns the arena to its freshly-created state. This is the only
// deallocation primitive; it must be called on cart-unload.
func (a *Arena) Reset() {
	a.offset = 0
	for i := range a.mem {
		a.mem[i] = 0
	}
}

// Used reports how many bytes are currently allocated.
func (a *Arena) Used() int {
	return a.offset
}

// Cap reports the arena's total capacity.
func (a *Arena) Cap() int {
	return len(a.mem)
}
