// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rt

// ContState is the lifecycle state of a container.
type ContState int32

const (
	// StateUninitialized is the state of a container before Init
	// (and after a successful Shutdown).
	StateUninitialized ContState = iota
	// StateStopped is the nominal idle state: synchronization primitives
	// exist, no activation thread is running.
	StateStopped
	// StateStarted is the nominal running state: the activation thread
	// has been created and not yet joined.
	StateStarted
	// StateConfigErr records a configuration call made outside its
	// allowed window. Recoverable only through Shutdown and Reset.
	StateConfigErr
	// StateSyncErr records a synchronization primitive failure. The
	// failing operation and raw code are available through LastError.
	StateSyncErr
)

const (
	StateUninitializedName = "uninitialized"
	StateStoppedName       = "stopped"
	StateStartedName       = "started"
	StateConfigErrName     = "configError"
	StateSyncErrName       = "syncError"
)

var stateNames = map[ContState]string{
	StateUninitialized: StateUninitializedName,
	StateStopped:       StateStoppedName,
	StateStarted:       StateStartedName,
	StateConfigErr:     StateConfigErrName,
	StateSyncErr:       StateSyncErrName,
}

func (s ContState) String() string {
	if name, found := stateNames[s]; found {
		return name
	}
	return "unknown"
}
