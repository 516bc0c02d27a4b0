// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rt

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/orbitalsw/rtcontainer/rt/statejson"
)

// ErrNotInitializable is returned by Init when the container is not in
// the uninitialized state. The container is also moved to StateConfigErr.
var ErrNotInitializable = errors.New("NotInitializable")

// dataBox wraps user data so atomic.Value accepts any payload type.
type dataBox struct {
	value interface{}
}

// Container pairs one activation thread with a notification procedure
// and an activation procedure. External threads deliver notifications
// through Notify; the activation thread consumes them and repeatedly
// decides whether to run the functional behaviour, until the behaviour
// reports completion or Stop is called.
//
// A Container is caller-owned plain storage: create it with New, reach
// the stopped state with Init, run Start/Notify/Stop cycles, then
// Shutdown and optionally Reset for reuse.
type Container struct {
	// Platform backs the container's mutex, condition variable and
	// activation thread. Left alone it defaults to the Go runtime;
	// tests replace it to inject primitive failures.
	Platform Platform

	id string

	// Shared scalars. Mutated only with the container mutex held, but
	// stored atomically so the unlocked accessors are well defined.
	// There is intentionally no cross-field snapshot guarantee.
	state             int32
	stateLastModified int64
	notifCounter      int64
	notifPrStarted    int32
	activPrStarted    int32
	errCode           int64
	lastErr           atomic.Value // *Error

	hooks hooks
	data  atomic.Value // dataBox

	threadAttr Attribute
	mutexAttr  Attribute
	condAttr   Attribute

	// Per-primitive valid bits: Shutdown only destroys what a prior
	// Init actually managed to initialize.
	threadAttrValid bool
	mutexAttrValid  bool
	condAttrValid   bool
	mutexValid      bool
	condValid       bool
}

// New returns a container with all defaults installed, equivalent to
// Reset on fresh storage.
func New() *Container {
	c := &Container{}
	c.Reset()
	return c
}

// Reset unconditionally restores the container defaults: uninitialized
// state, dummy hooks, no attribute objects, no user data, cleared error
// and counters. It never touches synchronization primitives, so a
// container that has been initialized must be Shutdown first or its
// primitives are abandoned.
func (c *Container) Reset() {
	if c.Platform == nil {
		c.Platform = &goPlatform{}
	}
	c.id = uuid.New().String()
	c.hooks = defaultHooks()
	c.threadAttr = nil
	c.mutexAttr = nil
	c.condAttr = nil
	c.threadAttrValid = false
	c.mutexAttrValid = false
	c.condAttrValid = false
	c.mutexValid = false
	c.condValid = false
	atomic.StoreInt64(&c.notifCounter, 0)
	atomic.StoreInt32(&c.notifPrStarted, 0)
	atomic.StoreInt32(&c.activPrStarted, 0)
	atomic.StoreInt64(&c.errCode, 0)
	c.lastErr.Store((*Error)(nil))
	c.data.Store(dataBox{})
	c.setState(StateUninitialized)
}

// ID returns the instance identifier assigned by the last Reset.
func (c *Container) ID() string { return c.id }

func (c *Container) setState(state ContState) {
	atomic.StoreInt32(&c.state, int32(state))
	atomic.StoreInt64(&c.stateLastModified, time.Now().UnixNano())
	log.Debugf("container %s: state %s", c.id, state)
}

// failSync records a synchronization primitive failure: the container
// enters StateSyncErr, the raw code becomes readable through GetErrCode
// and the full error through LastError.
func (c *Container) failSync(op Op, cause error) *Error {
	rtErr := syncError(op, cause)
	c.lastErr.Store(rtErr)
	atomic.StoreInt64(&c.errCode, int64(rtErr.Code))
	c.setState(StateSyncErr)
	log.WithError(rtErr).Warnf("container %s: %s failed", c.id, op)
	return rtErr
}

// configurable guards every configuration call that is only legal
// before Init. Outside that window the container records a
// configuration error and the call leaves its target untouched.
func (c *Container) configurable() bool {
	if c.GetContState() != StateUninitialized {
		c.setState(StateConfigErr)
		return false
	}
	return true
}

func normalize(action Action) Action {
	if action == nil {
		return DummyAction
	}
	return action
}

// SetInitializeNotifPr installs the hook run once by Start when the
// notification procedure begins.
func (c *Container) SetInitializeNotifPr(action Action) {
	if c.configurable() {
		c.hooks.initializeNotifPr = normalize(action)
	}
}

// SetFinalizeNotifPr installs the hook run when the notification
// procedure finalizes during termination.
func (c *Container) SetFinalizeNotifPr(action Action) {
	if c.configurable() {
		c.hooks.finalizeNotifPr = normalize(action)
	}
}

// SetImplementNotifLogic installs the hook run by every Notify while
// the container runs; a true outcome delivers the notification to the
// activation thread.
func (c *Container) SetImplementNotifLogic(action Action) {
	if c.configurable() {
		c.hooks.implementNotifLogic = normalize(action)
	}
}

// SetInitializeActivPr installs the hook run once by Start when the
// activation procedure begins.
func (c *Container) SetInitializeActivPr(action Action) {
	if c.configurable() {
		c.hooks.initializeActivPr = normalize(action)
	}
}

// SetFinalizeActivPr installs the hook run when the activation
// procedure finalizes, on external stop or intrinsic completion.
func (c *Container) SetFinalizeActivPr(action Action) {
	if c.configurable() {
		c.hooks.finalizeActivPr = normalize(action)
	}
}

// SetSetUpNotif installs the hook run after every non-terminal
// activation cycle, typically to arm the next notification source.
func (c *Container) SetSetUpNotif(action Action) {
	if c.configurable() {
		c.hooks.setUpNotif = normalize(action)
	}
}

// SetImplementActivLogic installs the hook deciding whether the
// functional behaviour is authorized this cycle.
func (c *Container) SetImplementActivLogic(action Action) {
	if c.configurable() {
		c.hooks.implementActivLogic = normalize(action)
	}
}

// SetExecFuncBehaviour installs the functional behaviour hook; a true
// outcome means the behaviour has completed and the container stops.
func (c *Container) SetExecFuncBehaviour(action Action) {
	if c.configurable() {
		c.hooks.execFuncBehaviour = normalize(action)
	}
}

// SetPlatformAttr installs the optional attribute objects for the
// activation thread, the mutex and the condition variable. Nil entries
// select platform defaults.
func (c *Container) SetPlatformAttr(threadAttr, mutexAttr, condAttr Attribute) {
	if c.configurable() {
		c.threadAttr = threadAttr
		c.mutexAttr = mutexAttr
		c.condAttr = condAttr
	}
}

// GetThreadAttr returns the installed thread attribute object, nil for
// platform defaults.
func (c *Container) GetThreadAttr() Attribute { return c.threadAttr }

// GetMutexAttr returns the installed mutex attribute object.
func (c *Container) GetMutexAttr() Attribute { return c.mutexAttr }

// GetCondAttr returns the installed condition variable attribute object.
func (c *Container) GetCondAttr() Attribute { return c.condAttr }

// SetData attaches caller-owned user data to the container. Unlike the
// other setters it is legal in any state; hooks read it back with
// GetData. The container never inspects the value.
func (c *Container) SetData(data interface{}) {
	c.data.Store(dataBox{value: data})
}

// GetData returns the user data attached with SetData, nil if none.
func (c *Container) GetData() interface{} {
	if box, ok := c.data.Load().(dataBox); ok {
		return box.value
	}
	return nil
}

// Init creates the container's synchronization primitives and moves it
// from uninitialized to stopped. Attribute objects are initialized
// first (mutex, condition variable, thread order), then the mutex, then
// the condition variable. The first failing step records its error and
// aborts the rest.
func (c *Container) Init() error {
	if c.GetContState() != StateUninitialized {
		c.setState(StateConfigErr)
		return ErrNotInitializable
	}
	if c.mutexAttr != nil {
		if err := c.mutexAttr.Init(); err != nil {
			return c.failSync(OpMutexAttrInit, err)
		}
		c.mutexAttrValid = true
	}
	if c.condAttr != nil {
		if err := c.condAttr.Init(); err != nil {
			return c.failSync(OpCondAttrInit, err)
		}
		c.condAttrValid = true
	}
	if c.threadAttr != nil {
		if err := c.threadAttr.Init(); err != nil {
			return c.failSync(OpThreadAttrInit, err)
		}
		c.threadAttrValid = true
	}
	if err := c.Platform.InitMutex(c.mutexAttr); err != nil {
		return c.failSync(OpMutexInit, err)
	}
	c.mutexValid = true
	if err := c.Platform.InitCond(c.condAttr); err != nil {
		return c.failSync(OpCondInit, err)
	}
	c.condValid = true
	c.setState(StateStopped)
	return nil
}

// Shutdown destroys whatever Init successfully created, in reverse
// dependency order, and returns the container to the uninitialized
// state. The caller must make sure the container is stopped and its
// activation thread joined; this is not enforced. The first failing
// destroy records its error and aborts the rest.
func (c *Container) Shutdown() error {
	if c.threadAttrValid {
		if err := c.threadAttr.Destroy(); err != nil {
			return c.failSync(OpThreadAttrDestroy, err)
		}
		c.threadAttrValid = false
	}
	if c.mutexAttrValid {
		if err := c.mutexAttr.Destroy(); err != nil {
			return c.failSync(OpMutexAttrDestroy, err)
		}
		c.mutexAttrValid = false
	}
	if c.condAttrValid {
		if err := c.condAttr.Destroy(); err != nil {
			return c.failSync(OpCondAttrDestroy, err)
		}
		c.condAttrValid = false
	}
	if c.condValid {
		if err := c.Platform.DestroyCond(); err != nil {
			return c.failSync(OpCondDestroy, err)
		}
		c.condValid = false
	}
	if c.mutexValid {
		if err := c.Platform.DestroyMutex(); err != nil {
			return c.failSync(OpMutexDestroy, err)
		}
		c.mutexValid = false
	}
	c.setState(StateUninitialized)
	return nil
}

// Start brings a stopped container to the started state: both
// procedures are marked started, their initialization hooks and the
// set-up-notification hook run, the notification backlog is cleared and
// the activation thread is created. Calling Start in any other state is
// a no-op. Start must not be called again until a previous activation
// thread has been joined through WaitForTermination.
//
// The mutex is never left held on an error return.
func (c *Container) Start() error {
	if err := c.Platform.Lock(); err != nil {
		return c.failSync(OpMutexLock, err)
	}
	if c.GetContState() != StateStopped {
		if err := c.Platform.Unlock(); err != nil {
			return c.failSync(OpMutexUnlock, err)
		}
		return nil
	}
	atomic.StoreInt32(&c.notifPrStarted, 1)
	atomic.StoreInt32(&c.activPrStarted, 1)
	c.hooks.initializeNotifPr(c)
	c.hooks.initializeActivPr(c)
	c.hooks.setUpNotif(c)
	c.setState(StateStarted)
	atomic.StoreInt64(&c.notifCounter, 0)
	if err := c.Platform.CreateThread(c.threadAttr, c.activationLoop); err != nil {
		rtErr := c.failSync(OpThreadCreate, err)
		_ = c.Platform.Unlock()
		return rtErr
	}
	if err := c.Platform.Unlock(); err != nil {
		return c.failSync(OpMutexUnlock, err)
	}
	log.Debugf("container %s: started", c.id)
	return nil
}

// Stop requests graceful termination of a started container; in any
// other state it is a no-op. The request is cooperative: the container
// moves to stopped immediately, one wake-up token is queued and the
// activation thread finalizes both procedures on its next cycle. Any
// backlog beyond the current cycle is dropped best effort.
func (c *Container) Stop() error {
	if err := c.Platform.Lock(); err != nil {
		return c.failSync(OpMutexLock, err)
	}
	if c.GetContState() != StateStarted {
		if err := c.Platform.Unlock(); err != nil {
			return c.failSync(OpMutexUnlock, err)
		}
		return nil
	}
	c.setState(StateStopped)
	atomic.AddInt64(&c.notifCounter, 1)
	if err := c.Platform.Signal(); err != nil {
		rtErr := c.failSync(OpCondSignal, err)
		_ = c.Platform.Unlock()
		return rtErr
	}
	if err := c.Platform.Unlock(); err != nil {
		return c.failSync(OpMutexUnlock, err)
	}
	log.Debugf("container %s: stop requested", c.id)
	return nil
}

// Notify delivers one notification to the container. Safe to call from
// any thread at any rate; it blocks only for the duration of the
// notification procedure, which runs with the container mutex held.
// Producers never block on backlog size.
func (c *Container) Notify() error {
	if err := c.Platform.Lock(); err != nil {
		return c.failSync(OpMutexLock, err)
	}
	if err := c.execNotifProcedure(); err != nil {
		_ = c.Platform.Unlock()
		return err
	}
	if err := c.Platform.Unlock(); err != nil {
		return c.failSync(OpMutexUnlock, err)
	}
	return nil
}

// WaitForTermination blocks until the activation thread exits. It must
// not be called before Start has created a thread, nor concurrently by
// two callers on the same container.
func (c *Container) WaitForTermination() error {
	if err := c.Platform.JoinThread(); err != nil {
		return c.failSync(OpThreadJoin, err)
	}
	return nil
}

// GetContState returns the current lifecycle state without taking the
// container mutex.
func (c *Container) GetContState() ContState {
	return ContState(atomic.LoadInt32(&c.state))
}

// GetErrCode returns the raw failure code of the last synchronization
// primitive failure, zero when nominal.
func (c *Container) GetErrCode() int {
	return int(atomic.LoadInt64(&c.errCode))
}

// LastError returns the last recorded synchronization failure, nil when
// nominal.
func (c *Container) LastError() *Error {
	if rtErr, ok := c.lastErr.Load().(*Error); ok {
		return rtErr
	}
	return nil
}

// GetNotifCounter returns the pending notification backlog. Under
// concurrent mutation the value is a point-in-time observation only.
func (c *Container) GetNotifCounter() int64 {
	return atomic.LoadInt64(&c.notifCounter)
}

// IsNotifPrStarted reports whether the notification procedure has
// started and not yet finalized.
func (c *Container) IsNotifPrStarted() bool {
	return atomic.LoadInt32(&c.notifPrStarted) != 0
}

// IsActivPrStarted reports whether the activation procedure has started
// and not yet finalized.
func (c *Container) IsActivPrStarted() bool {
	return atomic.LoadInt32(&c.activPrStarted) != 0
}

// Describe returns a snapshot of the container for debugging purposes.
func (c *Container) Describe() statejson.ContainerDescription {
	desc := statejson.ContainerDescription{
		ID: c.id,
		State: statejson.StateDescription{
			Name:         c.GetContState().String(),
			LastModified: atomic.LoadInt64(&c.stateLastModified) / int64(time.Millisecond),
		},
		NotifCounter:   c.GetNotifCounter(),
		NotifPrStarted: c.IsNotifPrStarted(),
		ActivPrStarted: c.IsActivPrStarted(),
		ErrCode:        c.GetErrCode(),
	}
	if rtErr := c.LastError(); rtErr != nil {
		desc.ErrOp = rtErr.Op.String()
	}
	return desc
}
