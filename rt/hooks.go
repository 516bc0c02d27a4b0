// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rt

// Action is the shape shared by all eight container hooks. It receives
// the container (giving access to user data through GetData) and returns
// the hook outcome; what a true outcome means depends on the slot (see
// the hook table in the package documentation).
type Action func(c *Container) bool

// DummyAction is the default installed in every hook slot by Reset.
// It does nothing and reports a positive outcome.
func DummyAction(c *Container) bool { return true }

// hooks holds the eight configurable behaviour slots of a container.
type hooks struct {
	initializeNotifPr   Action
	finalizeNotifPr     Action
	implementNotifLogic Action
	initializeActivPr   Action
	finalizeActivPr     Action
	setUpNotif          Action
	implementActivLogic Action
	execFuncBehaviour   Action
}

func defaultHooks() hooks {
	return hooks{
		initializeNotifPr:   DummyAction,
		finalizeNotifPr:     DummyAction,
		implementNotifLogic: DummyAction,
		initializeActivPr:   DummyAction,
		finalizeActivPr:     DummyAction,
		setUpNotif:          DummyAction,
		implementActivLogic: DummyAction,
		execFuncBehaviour:   DummyAction,
	}
}

// Attribute is an opaque, caller-owned attribute object for the thread,
// mutex or condition variable of a container. A nil Attribute means
// platform defaults. Init is called during container initialization,
// Destroy during shutdown; either may fail, and the failure is recorded
// against the corresponding attribute operation.
type Attribute interface {
	Init() error
	Destroy() error
}
