package arbitrary

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
)

// PanicError is a recovered panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("arbitrary: recovered panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// PanicReporter receives panics recovered by Protect.
type PanicReporter func(recovered any, stack []byte)

var (
	// muted counts active CatchPanic calls. Reports are dropped while it is
	// positive.
	muted atomic.Int32

	reporterMu sync.RWMutex
	reporter   PanicReporter = logPanic
)

func logPanic(recovered any, stack []byte) {
	log.Error("Recovered panic", "panic", recovered, "stack", string(stack))
}

// SetPanicReporter installs r and returns the previous reporter. A nil r
// restores the default, which logs at error level.
func SetPanicReporter(r PanicReporter) PanicReporter {
	if r == nil {
		r = logPanic
	}
	reporterMu.Lock()
	defer reporterMu.Unlock()
	prev := reporter
	reporter = r
	return prev
}

// CatchPanic runs fn and returns any panic it raises as a *PanicError. The
// panic reporter stays muted until the outermost CatchPanic returns, so
// faults injected on purpose produce no output.
func CatchPanic(fn func() error) (err error) {
	muted.Add(1)
	defer muted.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// Protect runs fn and returns any panic it raises as a *PanicError, handing
// it to the panic reporter unless a CatchPanic is active.
func Protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			pe := &PanicError{Value: r, Stack: debug.Stack()}
			if muted.Load() == 0 {
				reporterMu.RLock()
				report := reporter
				reporterMu.RUnlock()
				report(pe.Value, pe.Stack)
			}
			err = pe
		}
	}()
	return fn()
}
