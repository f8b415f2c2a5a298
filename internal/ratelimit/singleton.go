package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Instance is the process-wide limiter together with the store connection it uses.
type Instance struct {
	Limiter Limiter
	Store   Store
	// Close releases the store connection. May be nil.
	Close func() error
}

// Builder constructs the Instance on first use.
type Builder func() (*Instance, error)

// Singleton lazily builds one Instance per process. Concurrent first calls wait on
// a single build; a failed build is reported to its caller and attempted again on
// the next call, and the first successful build is kept for the process lifetime.
type Singleton struct {
	build    Builder
	mu       sync.Mutex
	instance atomic.Pointer[Instance]
}

// NewSingleton creates a singleton around build. Nothing is built until Get.
func NewSingleton(build Builder) *Singleton {
	return &Singleton{build: build}
}

// Get returns the instance, building it if this is the first successful call.
func (s *Singleton) Get() (*Instance, error) {
	if inst := s.instance.Load(); inst != nil {
		return inst, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if inst := s.instance.Load(); inst != nil {
		return inst, nil
	}

	inst, err := s.build()
	if err != nil {
		return nil, err
	}

	s.instance.Store(inst)

	return inst, nil
}

// Initialized reports whether the instance has been built.
func (s *Singleton) Initialized() bool {
	return s.instance.Load() != nil
}

// Limit builds the instance if needed and delegates to its limiter.
func (s *Singleton) Limit(ctx context.Context, identity string) (Verdict, error) {
	inst, err := s.Get()
	if err != nil {
		return Verdict{}, err
	}

	return inst.Limiter.Limit(ctx, identity)
}

// Shutdown closes the store connection if the instance was ever built.
func (s *Singleton) Shutdown() error {
	inst := s.instance.Load()
	if inst == nil || inst.Close == nil {
		return nil
	}

	return inst.Close()
}

// Compile-time check.
var _ Limiter = (*Singleton)(nil)
