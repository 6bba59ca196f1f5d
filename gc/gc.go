// Package gc provides the lifecycle cooperation hooks the coroutine runtime
// implements for its host: cycle-collector tracking and traversal, weak
// references, and the process-wide sink for errors raised during finalization
// that have no caller to receive them.
package gc

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Traversable is implemented by container objects that participate in cycle
// collection. Traverse must call visit for every owned child reference.
type Traversable interface {
	Traverse(visit func(child any))
}

// Collector tracks container objects for cycle detection. The runtime only
// needs the bookkeeping side of the contract: objects are tracked while alive
// and must be untracked before teardown begins, so the collector never
// observes a half-torn-down object.
type Collector struct {
	mu      sync.Mutex
	tracked map[Traversable]struct{}
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{tracked: make(map[Traversable]struct{})}
}

// Track registers an object with the collector.
func (c *Collector) Track(obj Traversable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracked[obj] = struct{}{}
}

// Untrack removes an object from the collector. Untracking an object that is
// not tracked is a no-op.
func (c *Collector) Untrack(obj Traversable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tracked, obj)
}

// IsTracked reports whether the object is currently tracked.
func (c *Collector) IsTracked(obj Traversable) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.tracked[obj]
	return ok
}

// Len returns the number of tracked objects.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tracked)
}

// DefaultCollector is the process-wide collector instance.
var DefaultCollector = NewCollector()

// Track registers an object with the default collector.
func Track(obj Traversable) {
	DefaultCollector.Track(obj)
}

// Untrack removes an object from the default collector.
func Untrack(obj Traversable) {
	DefaultCollector.Untrack(obj)
}

// IsTracked reports whether the object is tracked by the default collector.
func IsTracked(obj Traversable) bool {
	return DefaultCollector.IsTracked(obj)
}

var (
	unraisableMu      sync.Mutex
	unraisableHandler = defaultUnraisable
)

func defaultUnraisable(obj any, err error) {
	log.Error().
		Err(err).
		Str("object", fmt.Sprintf("%v", obj)).
		Msg("unraisable exception in finalizer")
}

// Unraisable reports an error that was raised with no caller to receive it,
// such as an exception escaping a forced close during finalization.
func Unraisable(obj any, err error) {
	unraisableMu.Lock()
	handler := unraisableHandler
	unraisableMu.Unlock()
	handler(obj, err)
}

// SetUnraisableHandler replaces the process-wide unraisable-error sink and
// returns the previous handler. Passing nil restores the default, which logs
// the error.
func SetUnraisableHandler(fn func(obj any, err error)) func(obj any, err error) {
	unraisableMu.Lock()
	defer unraisableMu.Unlock()
	prev := unraisableHandler
	if fn == nil {
		fn = defaultUnraisable
	}
	unraisableHandler = fn
	return prev
}
