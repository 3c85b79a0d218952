package assets

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Resolver turns an asset name into a local file path. It is called on a background goroutine.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// Result is the outcome of one load request.
type Result struct {
	Name string
	Path string
	Err  error
}

// Loader runs one asset request at a time. Start returns false while a request is in flight;
// the frame loop collects the outcome with Poll, which also clears the guard.
type Loader struct {
	res      Resolver
	inFlight atomic.Bool
	done     chan Result
}

func NewLoader(res Resolver) *Loader {
	return &Loader{res: res, done: make(chan Result, 1)}
}

// Start begins resolving name in the background. It is a no-op returning false when a
// request is already in flight. A started request always delivers exactly one Result.
func (l *Loader) Start(ctx context.Context, name string) bool {
	if !l.inFlight.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		r := Result{Name: name}
		defer func() {
			if p := recover(); p != nil {
				r.Path, r.Err = "", &LoadError{Message: fmt.Sprintf("loader panic: %v", p)}
			}
			l.done <- r
		}()
		r.Path, r.Err = l.res.Resolve(ctx, name)
	}()
	return true
}

// Poll returns the finished request, if any, without blocking.
func (l *Loader) Poll() (Result, bool) {
	select {
	case r := <-l.done:
		l.inFlight.Store(false)
		return r, true
	default:
		return Result{}, false
	}
}

// Loading reports whether a request is in flight or finished but not yet polled.
func (l *Loader) Loading() bool {
	return l.inFlight.Load()
}
