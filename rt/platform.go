// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rt

import (
	"errors"
	"sync"
)

// ErrMutexMissing is returned by platform operations that need the
// container mutex before it has been initialized.
var ErrMutexMissing = errors.New("MutexMissing")

// ErrCondMissing is returned by condition variable operations before the
// condition variable has been initialized.
var ErrCondMissing = errors.New("CondMissing")

// ErrThreadMissing is returned by JoinThread when no activation thread
// has been created.
var ErrThreadMissing = errors.New("ThreadMissing")

// Platform isolates the synchronization primitives backing a container.
// Every operation reports failure separately so that the container can
// record which primitive call failed. The default implementation is
// swapped out by tests to exercise the failure paths.
type Platform interface {
	InitMutex(attr Attribute) error
	DestroyMutex() error
	Lock() error
	Unlock() error
	InitCond(attr Attribute) error
	DestroyCond() error
	Signal() error
	// Wait must be called with the mutex held; it releases the mutex
	// while waiting and reacquires it before returning.
	Wait() error
	CreateThread(attr Attribute, body func()) error
	// JoinThread blocks until the thread created by CreateThread exits.
	JoinThread() error
}

// goPlatform is the default Platform over the Go runtime. Attribute
// objects are opaque pass-through values and have no effect here; they
// exist for platforms that need them.
type goPlatform struct {
	mutex *sync.Mutex
	cond  *sync.Cond
	done  chan struct{}
}

func (p *goPlatform) InitMutex(attr Attribute) error {
	p.mutex = &sync.Mutex{}
	return nil
}

func (p *goPlatform) DestroyMutex() error {
	p.mutex = nil
	return nil
}

func (p *goPlatform) Lock() error {
	if p.mutex == nil {
		return ErrMutexMissing
	}
	p.mutex.Lock()
	return nil
}

func (p *goPlatform) Unlock() error {
	if p.mutex == nil {
		return ErrMutexMissing
	}
	p.mutex.Unlock()
	return nil
}

func (p *goPlatform) InitCond(attr Attribute) error {
	if p.mutex == nil {
		return ErrMutexMissing
	}
	p.cond = sync.NewCond(p.mutex)
	return nil
}

func (p *goPlatform) DestroyCond() error {
	p.cond = nil
	return nil
}

func (p *goPlatform) Signal() error {
	if p.cond == nil {
		return ErrCondMissing
	}
	p.cond.Signal()
	return nil
}

func (p *goPlatform) Wait() error {
	if p.cond == nil {
		return ErrCondMissing
	}
	p.cond.Wait()
	return nil
}

func (p *goPlatform) CreateThread(attr Attribute, body func()) error {
	done := make(chan struct{})
	p.done = done
	go func() {
		defer close(done)
		body()
	}()
	return nil
}

func (p *goPlatform) JoinThread() error {
	if p.done == nil {
		return ErrThreadMissing
	}
	<-p.done
	p.done = nil
	return nil
}
