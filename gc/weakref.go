package gc

import "sync"

// WeakRef is a non-owning reference to an object. It is cleared exactly once,
// when the referent is destroyed.
type WeakRef struct {
	mu     sync.Mutex
	target any
}

// Get returns the referent and true, or nil and false after invalidation.
func (w *WeakRef) Get() (any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.target == nil {
		return nil, false
	}
	return w.target, true
}

func (w *WeakRef) clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.target = nil
}

// WeakList holds the back-references to an object maintained by the host's
// weak-reference mechanism. The owning object invalidates the list at
// destruction.
type WeakList struct {
	mu   sync.Mutex
	refs []*WeakRef
}

// NewRef creates a weak reference to target and records it on the list.
func (l *WeakList) NewRef(target any) *WeakRef {
	l.mu.Lock()
	defer l.mu.Unlock()
	ref := &WeakRef{target: target}
	l.refs = append(l.refs, ref)
	return ref
}

// Len returns the number of live references on the list.
func (l *WeakList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.refs)
}

// Invalidate clears every reference on the list. Called exactly once, at the
// referent's destruction.
func (l *WeakList) Invalidate() {
	l.mu.Lock()
	refs := l.refs
	l.refs = nil
	l.mu.Unlock()
	for _, ref := range refs {
		ref.clear()
	}
}
