// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rt

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// execNotifProcedure is the notification procedure state machine. It
// runs with the container mutex held, on every Notify.
func (c *Container) execNotifProcedure() error {
	if !c.IsNotifPrStarted() {
		// Container not running, the notification is dropped.
		return nil
	}
	if !c.IsActivPrStarted() {
		// The activation side finalized first; catch up and finalize
		// the notification procedure as well.
		c.hooks.finalizeNotifPr(c)
		atomic.StoreInt32(&c.notifPrStarted, 0)
		return nil
	}
	if c.hooks.implementNotifLogic(c) {
		atomic.AddInt64(&c.notifCounter, 1)
		if err := c.Platform.Signal(); err != nil {
			return c.failSync(OpCondSignal, err)
		}
	}
	return nil
}

// execActivProcedure is the activation procedure state machine. It runs
// on the activation thread, outside the container mutex, so a slow
// functional behaviour never blocks notifiers.
func (c *Container) execActivProcedure() {
	if c.GetContState() == StateStopped {
		c.hooks.finalizeActivPr(c)
		atomic.StoreInt32(&c.activPrStarted, 0)
		return
	}
	if c.hooks.implementActivLogic(c) {
		if c.hooks.execFuncBehaviour(c) {
			// Intrinsic completion: the behaviour reports it is done.
			c.hooks.finalizeActivPr(c)
			atomic.StoreInt32(&c.activPrStarted, 0)
			return
		}
	}
	c.hooks.setUpNotif(c)
}

// activationLoop is the activation thread body: wait for a pending
// notification, consume it, run the activation procedure, and decide
// whether to terminate. Any primitive failure terminates the thread
// immediately with the corresponding error recorded.
func (c *Container) activationLoop() {
	log.Debugf("container %s: activation thread running", c.id)
	for {
		if err := c.Platform.Lock(); err != nil {
			c.failSync(OpMutexLock, err)
			return
		}
		for atomic.LoadInt64(&c.notifCounter) == 0 {
			if err := c.Platform.Wait(); err != nil {
				_ = c.Platform.Unlock()
				c.failSync(OpCondWait, err)
				return
			}
		}
		atomic.AddInt64(&c.notifCounter, -1)
		if err := c.Platform.Unlock(); err != nil {
			c.failSync(OpMutexUnlock, err)
			return
		}

		c.execActivProcedure()

		if !c.IsActivPrStarted() {
			// The activation procedure finalized (intrinsic completion
			// or it observed a stop). Record the stopped state and give
			// the notification procedure one chance to observe it and
			// finalize under lock.
			c.terminate()
			return
		}
		if c.GetContState() == StateStopped {
			// External stop arrived while the procedure ran its
			// non-terminal branch; force the finalization branch now.
			c.execActivProcedure()
			c.terminate()
			return
		}
	}
}

// terminate finishes a stop: the container state becomes stopped and a
// final Notify lets the notification procedure finalize itself under
// lock.
func (c *Container) terminate() {
	if err := c.Platform.Lock(); err != nil {
		c.failSync(OpMutexLock, err)
		return
	}
	c.setState(StateStopped)
	if err := c.Platform.Unlock(); err != nil {
		c.failSync(OpMutexUnlock, err)
		return
	}
	// Best effort: the notification procedure finalizes on this call
	// unless a primitive fails, in which case the error state is
	// already recorded by Notify.
	_ = c.Notify()
	log.Debugf("container %s: activation thread exiting", c.id)
}
