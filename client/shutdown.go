package main

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// resources closes the external connections of the client exactly once, no matter if it is
// triggered by the end of main or by a signal
type resources struct {
	mu      sync.Mutex
	closed  bool
	closers []func() error
}

// Add registers a close function. If the resources were already closed, it is called right away
func (r *resources) Add(closer func() error) {
	r.mu.Lock()
	closed := r.closed
	if !closed {
		r.closers = append(r.closers, closer)
	}
	r.mu.Unlock()

	if closed {
		logCloseError(closer())
	}
}

// Close calls the registered close functions in reverse order. Later calls are no-ops
func (r *resources) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		logCloseError(closers[i]())
	}
}

func logCloseError(err error) {
	if err != nil {
		log.Errorf("[client][status: ERROR] %s", err.Error())
	}
}
