// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rt

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestDefaultHooksSingleCycle(t *testing.T) {
	cont := New()
	require.NoError(t, cont.Init())
	require.NoError(t, cont.Start())
	require.NoError(t, cont.Notify())
	require.NoError(t, cont.WaitForTermination())

	// the default functional behaviour reports completion immediately,
	// so the very first activation cycle terminates the container
	assert.Equal(t, StateStopped, cont.GetContState())
	assert.False(t, cont.IsNotifPrStarted())
	assert.False(t, cont.IsActivPrStarted())
	assert.EqualValues(t, 0, cont.GetNotifCounter())
}

func TestStartHookOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) Action {
		return func(*Container) bool {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return true
		}
	}

	cont := New()
	cont.SetInitializeNotifPr(record("initNotif"))
	cont.SetInitializeActivPr(record("initActiv"))
	cont.SetSetUpNotif(record("setUpNotif"))
	require.NoError(t, cont.Init())
	require.NoError(t, cont.Start())

	// the activation thread is parked on an empty backlog, so only the
	// three start-time hook calls have happened
	mu.Lock()
	assert.Equal(t, []string{"initNotif", "initActiv", "setUpNotif"}, order)
	mu.Unlock()
	assert.True(t, cont.IsNotifPrStarted())
	assert.True(t, cont.IsActivPrStarted())
	assert.Equal(t, StateStarted, cont.GetContState())

	require.NoError(t, cont.Stop())
	require.NoError(t, cont.WaitForTermination())
}

func TestStartWhenStartedIsNoop(t *testing.T) {
	cont := New()
	cont.SetExecFuncBehaviour(func(*Container) bool { return false })
	require.NoError(t, cont.Init())
	require.NoError(t, cont.Start())
	require.NoError(t, cont.Start())
	assert.Equal(t, StateStarted, cont.GetContState())
	require.NoError(t, cont.Stop())
	require.NoError(t, cont.WaitForTermination())
}

func TestStopWhenStoppedIsNoop(t *testing.T) {
	cont := New()
	require.NoError(t, cont.Init())
	require.NoError(t, cont.Stop())
	assert.Equal(t, StateStopped, cont.GetContState())
	assert.EqualValues(t, 0, cont.GetNotifCounter())
}

func TestNotifyBeforeStartIsDropped(t *testing.T) {
	var notifLogicCount int64
	cont := New()
	cont.SetImplementNotifLogic(func(*Container) bool {
		atomic.AddInt64(&notifLogicCount, 1)
		return true
	})
	require.NoError(t, cont.Init())
	require.NoError(t, cont.Notify())
	assert.EqualValues(t, 0, atomic.LoadInt64(&notifLogicCount))
	assert.EqualValues(t, 0, cont.GetNotifCounter())
}

func TestNotificationLogicSwallowsNotifications(t *testing.T) {
	var notifLogicCount, behaviourCount int64
	cont := New()
	cont.SetImplementNotifLogic(func(*Container) bool {
		atomic.AddInt64(&notifLogicCount, 1)
		return false
	})
	cont.SetImplementActivLogic(func(*Container) bool { return true })
	cont.SetExecFuncBehaviour(func(*Container) bool {
		atomic.AddInt64(&behaviourCount, 1)
		return true
	})
	require.NoError(t, cont.Init())
	require.NoError(t, cont.Start())

	require.NoError(t, cont.Notify())
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, cont.Notify())
	time.Sleep(10 * time.Millisecond)

	// both notifications reached the logic hook, neither reached the
	// activation thread
	assert.EqualValues(t, 2, atomic.LoadInt64(&notifLogicCount))
	assert.EqualValues(t, 0, atomic.LoadInt64(&behaviourCount))
	assert.EqualValues(t, 0, cont.GetNotifCounter())

	require.NoError(t, cont.Stop())
	require.NoError(t, cont.WaitForTermination())
}

func TestBacklogAccumulatesAndDrains(t *testing.T) {
	gate := make(chan struct{})
	var behaviourCount int64
	cont := New()
	cont.SetExecFuncBehaviour(func(*Container) bool {
		<-gate
		atomic.AddInt64(&behaviourCount, 1)
		return false
	})
	require.NoError(t, cont.Init())
	require.NoError(t, cont.Start())

	for i := 0; i < 5; i++ {
		require.NoError(t, cont.Notify())
	}
	// the activation thread can have consumed at most one token: the
	// first cycle is blocked inside the functional behaviour
	backlog := cont.GetNotifCounter()
	assert.True(t, backlog == 4 || backlog == 5, "backlog %d", backlog)

	close(gate)
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&behaviourCount) == 5 && cont.GetNotifCounter() == 0
	}, 2*time.Second, time.Millisecond)

	require.NoError(t, cont.Stop())
	require.NoError(t, cont.WaitForTermination())
	assert.Equal(t, StateStopped, cont.GetContState())
}

func TestIntrinsicCompletionWithPendingBacklog(t *testing.T) {
	cont := New()
	require.NoError(t, cont.Init())
	require.NoError(t, cont.Start())
	for i := 0; i < 3; i++ {
		require.NoError(t, cont.Notify())
	}
	require.NoError(t, cont.WaitForTermination())

	// completion on the first consumed token; any remaining backlog is
	// dropped best effort
	assert.Equal(t, StateStopped, cont.GetContState())
	assert.False(t, cont.IsNotifPrStarted())
	assert.False(t, cont.IsActivPrStarted())
}

func TestConcurrentNotify(t *testing.T) {
	cont := New()
	cont.SetExecFuncBehaviour(func(*Container) bool { return false })
	require.NoError(t, cont.Init())
	require.NoError(t, cont.Start())

	var errg errgroup.Group
	for i := 0; i < 4; i++ {
		errg.Go(func() error {
			for j := 0; j < 100; j++ {
				if err := cont.Notify(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, errg.Wait())
	assert.True(t, cont.GetNotifCounter() >= 0)

	assert.Eventually(t, func() bool {
		return cont.GetNotifCounter() == 0
	}, 2*time.Second, time.Millisecond)

	require.NoError(t, cont.Stop())
	require.NoError(t, cont.WaitForTermination())
	assert.False(t, cont.IsNotifPrStarted())
	assert.False(t, cont.IsActivPrStarted())
}

func TestStartStopStress(t *testing.T) {
	const cycles = 25

	var initNotif, finNotif, initActiv, finActiv, activLogic, behaviour int64
	count := func(counter *int64, outcome bool) Action {
		return func(*Container) bool {
			atomic.AddInt64(counter, 1)
			return outcome
		}
	}

	cont := New()
	cont.SetInitializeNotifPr(count(&initNotif, true))
	cont.SetFinalizeNotifPr(count(&finNotif, true))
	cont.SetInitializeActivPr(count(&initActiv, true))
	cont.SetFinalizeActivPr(count(&finActiv, true))
	cont.SetImplementActivLogic(count(&activLogic, true))
	cont.SetExecFuncBehaviour(count(&behaviour, false))
	require.NoError(t, cont.Init())

	stop := make(chan struct{})
	var notifiers errgroup.Group
	for i := 0; i < 2; i++ {
		seed := rand.New(rand.NewSource(int64(i) + 1))
		notifiers.Go(func() error {
			for {
				select {
				case <-stop:
					return nil
				default:
				}
				if err := cont.Notify(); err != nil {
					return err
				}
				time.Sleep(time.Duration(seed.Intn(200)) * time.Microsecond)
			}
		})
	}

	for i := 0; i < cycles; i++ {
		require.NoError(t, cont.Start())
		time.Sleep(time.Duration(rand.Intn(2000)) * time.Microsecond)
		require.NoError(t, cont.Stop())
		require.NoError(t, cont.WaitForTermination())

		n := int64(i + 1)
		assert.Equal(t, n, atomic.LoadInt64(&initNotif))
		assert.Equal(t, n, atomic.LoadInt64(&finNotif))
		assert.Equal(t, n, atomic.LoadInt64(&initActiv))
		assert.Equal(t, n, atomic.LoadInt64(&finActiv))
		assert.True(t, atomic.LoadInt64(&activLogic) >= atomic.LoadInt64(&behaviour))
	}

	close(stop)
	require.NoError(t, notifiers.Wait())
}
