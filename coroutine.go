package coroutine

import (
	"errors"

	"github.com/cloudcmds/coroutine/fiber"
	"github.com/cloudcmds/coroutine/gc"
	"github.com/cloudcmds/coroutine/object"
	"github.com/cloudcmds/coroutine/vm"
)

// Status describes the lifecycle position of a coroutine. Exactly one status
// holds at any instant.
type Status int

const (
	// StatusUnused means the coroutine was never resumed.
	StatusUnused Status = iota
	// StatusRunning means the coroutine was resumed at least once and has not
	// finished. It covers both "suspended" and "currently executing"; the
	// Running flag disambiguates.
	StatusRunning
	// StatusFinished is terminal: no further resumption is possible.
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusUnused:
		return "unused"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// BodyFunc is the entry contract for compiled coroutine bodies. The body
// produces values with co.Yield, which returns the value sent by the resumer
// or the exception thrown into the body at that suspend point. The body
// terminates by returning nil (end of sequence), returning ReturnValue(v) to
// carry a final value, or returning/propagating an exception.
type BodyFunc func(co *Coroutine, args []object.Object) error

// returnValue carries a body's final value out as the StopIteration payload.
type returnValue struct {
	value object.Object
}

func (r *returnValue) Error() string {
	return "coroutine return"
}

// ReturnValue wraps a body's final value. A body that returns ReturnValue(v)
// terminates normally and v becomes the payload of the end-of-sequence signal.
func ReturnValue(value object.Object) error {
	return &returnValue{value: value}
}

// Coroutine is a stackful generator/coroutine object. It owns its body's
// execution context, the frame representing the body's current position, the
// closed-over cells and initial parameters, and the value/exception slots
// exchanged with the resumer. A coroutine is bound to the thread state of its
// owning logical thread; it is not shareable across resumers.
type Coroutine struct {
	name      *object.String
	qualname  *object.String
	code      *Code
	body      BodyFunc
	ts        *vm.ThreadState
	yieldFrom object.Object

	callerCtx *fiber.Context
	bodyCtx   *fiber.Context

	// yielded is the transfer slot: the single value handed from the body to
	// the resumer on suspend. nil means the body exited with an exception
	// pending in the ambient error state.
	yielded object.Object

	// exc is the exception staged by Throw (or Close) before control
	// transfers into the body.
	exc *object.Raised

	frame   *vm.Frame
	closure []*object.Cell
	params  []object.Object

	running   bool
	status    Status
	refs      int64
	weakrefs  gc.WeakList
	destroyed bool
}

// Option configures a coroutine at construction.
type Option func(*Coroutine)

// WithClosure supplies the closed-over variable cells captured for the body.
func WithClosure(cells ...*object.Cell) Option {
	return func(c *Coroutine) {
		c.closure = cells
	}
}

// WithArgs supplies the initial call arguments handed to the body when it
// first runs.
func WithArgs(args ...object.Object) Option {
	return func(c *Coroutine) {
		c.params = args
	}
}

// New creates a coroutine for the given body, bound to the thread state of
// its owning logical thread. The returned coroutine holds one reference; the
// body's execution context is allocated lazily on first resume.
func New(ts *vm.ThreadState, code *Code, body BodyFunc, opts ...Option) *Coroutine {
	c := &Coroutine{
		name:      object.NewString(code.Name()),
		qualname:  object.NewString(code.Qualname()),
		code:      code,
		body:      body,
		ts:        ts,
		callerCtx: fiber.Caller(),
		status:    StatusUnused,
		refs:      1,
	}
	for _, opt := range opts {
		opt(c)
	}
	gc.Track(c)
	return c
}

// Status returns the coroutine's lifecycle status.
func (c *Coroutine) Status() Status {
	return c.status
}

// Running reports whether the body is executing right now.
func (c *Coroutine) Running() bool {
	return c.running
}

// Code returns the immutable body descriptor.
func (c *Coroutine) Code() *Code {
	return c.code
}

// Frame returns the frame representing the body's current position, or nil
// before first use and after finalization.
func (c *Coroutine) Frame() *vm.Frame {
	return c.frame
}

// ThreadState returns the thread state this coroutine is bound to.
func (c *Coroutine) ThreadState() *vm.ThreadState {
	return c.ts
}

// Delegate returns the iterator or awaitable currently being delegated to,
// or nil when the body is not delegating.
func (c *Coroutine) Delegate() object.Object {
	return c.yieldFrom
}

// FreeVarCount returns the number of closed-over cells.
func (c *Coroutine) FreeVarCount() int {
	return len(c.closure)
}

// FreeVar returns the closed-over cell at the given index.
func (c *Coroutine) FreeVar(index int) *object.Cell {
	return c.closure[index]
}

// Send resumes the coroutine, passing value into the body as the result of
// its last suspend point. The first resumption must pass object.Nil. Send
// returns the next value the body yields, or an error: StopIteration when the
// sequence is over, or whatever exception the body raised.
func (c *Coroutine) Send(value object.Object) (object.Object, error) {
	if value == nil {
		value = object.Nil
	}
	if c.status == StatusUnused && value != object.Object(object.Nil) {
		return nil, object.TypeErrorf("can't send non-nil value to a just-started coroutine")
	}
	if c.status == StatusFinished {
		return nil, object.NewStopIteration(nil)
	}
	if c.running {
		return nil, object.ValueErrorf("coroutine already executing")
	}
	return c.resume(value)
}

// resume performs the context switch into the body. The ambient exception
// state is saved before and restored after, so errors raised inside a nested
// resume never leak into a caller's unrelated exception state.
func (c *Coroutine) resume(value object.Object) (object.Object, error) {
	ts := c.ts
	saved := ts.FetchErr()

	if c.status == StatusUnused {
		ctx, err := fiber.New(c.run)
		if err != nil {
			ts.RestoreErr(saved)
			return nil, object.MemoryErrorf("coroutine cannot be allocated")
		}
		c.bodyCtx = ctx
		c.frame = vm.NewFrame(c.code.Name(), c.code.Qualname())
		c.status = StatusRunning
	}

	c.yielded = value

	// Put the coroutine's frame back on the ambient frame stack.
	prior := ts.SpliceFrame(c.frame)
	spliced := c.frame

	c.running = true
	fiber.Swap(c.callerCtx, c.bodyCtx)
	c.running = false

	// Take it off again, no matter how the body came back.
	ts.UnspliceFrame(spliced, prior)

	if c.yielded == nil {
		// The body exited; the pending exception is in the ambient state.
		c.status = StatusFinished
		c.frame = nil
		c.releaseParams()

		raised := ts.FetchErr()
		if raised == nil {
			raised = object.NewReturn(nil)
		}
		if c.code.Flags()&FlagStopIterationRemap != 0 && !raised.Returned() &&
			raised.Class() == object.StopIterationClass {
			orig := raised.Exception()
			repl := object.RuntimeErrorf("coroutine raised StopIteration")
			repl.SetCause(orig)
			repl.SetContext(orig)
			repl.SetTraceback(orig.Traceback())
			raised = object.NewRaised(repl)
		}
		ts.RestoreErr(saved)
		return nil, raised.Exception()
	}

	result := c.yielded
	c.yielded = nil
	ts.RestoreErr(saved)
	return result, nil
}

// Throw stages an exception and resumes the coroutine so the body observes it
// raised at its suspend point. Accepts 1-3 components: an exception class or
// instance, an optional payload, and an optional traceback. Staging failures
// leave the coroutine unchanged. Throwing into a finished coroutine restores
// the staged exception into the ambient error state and fails without
// resuming.
func (c *Coroutine) Throw(args ...object.Object) (object.Object, error) {
	raised, err := object.Stage(args...)
	if err != nil {
		return nil, err
	}
	if c.status != StatusFinished {
		c.exc = raised
		return c.Send(object.Nil)
	}
	c.ts.RestoreErr(raised)
	return nil, raised.Exception()
}

// Close cancels the coroutine. If it is suspended mid-body, a GeneratorExit
// exception is raised at the suspend point: a body that lets it propagate (or
// finishes) shuts down cleanly; a body that ignores it and yields again is an
// error. Close on an unused or finished coroutine is a no-op.
func (c *Coroutine) Close() error {
	if c.status != StatusRunning {
		return nil
	}
	c.exc = object.NewRaised(object.NewGeneratorExit())
	result, err := c.Send(object.Nil)
	if err == nil {
		_ = result
		return object.RuntimeErrorf("coroutine ignored GeneratorExit")
	}
	if object.IsException(err, object.GeneratorExitClass) ||
		object.IsException(err, object.StopIterationClass) {
		c.ts.ClearErr()
		return nil
	}
	return err
}

// Yield hands value to the resumer and suspends the body until the next
// resume. It returns the value passed to Send, or the exception thrown into
// the body at this suspend point as a non-nil error.
func (c *Coroutine) Yield(value object.Object) (object.Object, error) {
	if value == nil {
		value = object.Nil
	}
	if c.bodyCtx.Released() {
		// Cleanup code in an unwinding body tried to suspend again. There is
		// no resumer left to receive the value.
		fiber.Abort()
	}
	c.yielded = value
	fiber.Swap(c.bodyCtx, c.callerCtx)
	if c.exc != nil {
		raised := c.exc
		c.exc = nil
		return nil, raised.Exception()
	}
	return c.yielded, nil
}

// run is the body-side entry point, executing on the coroutine's own context.
func (c *Coroutine) run() {
	args := c.params
	c.params = nil

	var err error
	if staged := c.exc; staged != nil {
		// Thrown into before the first suspend point: the body observes the
		// exception at entry and never runs.
		c.exc = nil
		err = staged.Exception()
	} else {
		err = c.invoke(args)
	}

	// Terminate: leave the end-of-sequence signal or the body's exception as
	// the ambient error, mark the transfer slot empty, and hand control back
	// for good.
	var raised *object.Raised
	var rv *returnValue
	switch {
	case err == nil:
		raised = object.NewReturn(nil)
	case errors.As(err, &rv):
		raised = object.NewReturn(rv.value)
	default:
		exc := object.AsException(err)
		exc.SetTraceback(object.NewTraceback(c.code.Qualname(), exc.Traceback()))
		raised = object.NewRaised(exc)
	}
	c.ts.SetErr(raised)
	c.yielded = nil
	fiber.Exit(c.bodyCtx, c.callerCtx)
}

// invoke calls the body, converting panics into runtime errors. The fiber
// release signal is re-raised so a released context can unwind.
func (c *Coroutine) invoke(args []object.Object) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if fiber.IsReleased(r) {
				panic(r)
			}
			err = object.RuntimeErrorf("panic in coroutine body: %v", r)
		}
	}()
	return c.body(c, args)
}

func (c *Coroutine) releaseParams() {
	c.params = nil
}
