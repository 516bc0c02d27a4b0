// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package rt implements the real-time container primitive: a single
// activation thread bound to a pair of cooperating procedures, the
// notification procedure and the activation procedure, coordinated
// through a counting wake-up.
//
// External threads call Notify to deliver notifications; the activation
// thread consumes them one per cycle and runs the user-supplied
// functional behaviour until that behaviour reports completion or Stop
// is called. Notifiers never block on backlog size: the pending counter
// accumulates without bound while the activation thread is busy.
//
// Behaviour is injected through eight hook slots of the common Action
// shape, installed while the container is uninitialized:
//
//	Initialize-Notif-Proc    run once by Start
//	Finalize-Notif-Proc      run when the notification procedure stops
//	Implement-Notif-Logic    run by every Notify; true delivers the
//	                         notification to the activation thread
//	Initialize-Activ-Proc    run once by Start
//	Finalize-Activ-Proc      run when the activation procedure stops
//	Set-Up-Notification      run after every non-terminal cycle
//	Implement-Activ-Logic    true authorizes the functional behaviour
//	Exec-Func-Behaviour      true means the behaviour completed and the
//	                         container stops
//
// Notification-side hooks run with the container mutex held and must be
// fast; activation-side hooks run outside the mutex.
//
// Failures of the underlying primitives are fatal to the container
// instance: the container enters StateSyncErr with the failing
// operation recorded, and recovery is only possible through Shutdown
// and Reset.
package rt
