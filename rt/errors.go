// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rt

import "fmt"

// Op identifies the synchronization primitive operation that failed.
type Op int

const (
	OpNone Op = iota
	OpMutexAttrInit
	OpCondAttrInit
	OpThreadAttrInit
	OpMutexAttrDestroy
	OpCondAttrDestroy
	OpThreadAttrDestroy
	OpMutexInit
	OpCondInit
	OpMutexDestroy
	OpCondDestroy
	OpMutexLock
	OpMutexUnlock
	OpCondSignal
	OpCondWait
	OpThreadCreate
	OpThreadJoin
)

var opNames = map[Op]string{
	OpNone:              "None",
	OpMutexAttrInit:     "MutexAttrInit",
	OpCondAttrInit:      "CondAttrInit",
	OpThreadAttrInit:    "ThreadAttrInit",
	OpMutexAttrDestroy:  "MutexAttrDestroy",
	OpCondAttrDestroy:   "CondAttrDestroy",
	OpThreadAttrDestroy: "ThreadAttrDestroy",
	OpMutexInit:         "MutexInit",
	OpCondInit:          "CondInit",
	OpMutexDestroy:      "MutexDestroy",
	OpCondDestroy:       "CondDestroy",
	OpMutexLock:         "MutexLock",
	OpMutexUnlock:       "MutexUnlock",
	OpCondSignal:        "CondSignal",
	OpCondWait:          "CondWait",
	OpThreadCreate:      "ThreadCreate",
	OpThreadJoin:        "ThreadJoin",
}

func (op Op) String() string {
	if name, found := opNames[op]; found {
		return name
	}
	return "Unknown"
}

// Error reports a failed synchronization primitive operation. Op tells
// which operation failed, Code carries the raw platform failure code.
// One value per cause replaces a per-cause explosion of container states.
type Error struct {
	Op   Op
	Code int
	// Cause is the underlying platform error, when one exists.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rt: %s failed (code %d): %s", e.Op, e.Code, e.Cause)
	}
	return fmt.Sprintf("rt: %s failed (code %d)", e.Op, e.Code)
}

func (e *Error) Unwrap() error { return e.Cause }

// syncError normalizes a platform failure into *Error, preserving an
// *Error returned by a fault-injecting platform as-is.
func syncError(op Op, err error) *Error {
	if rtErr, ok := err.(*Error); ok {
		if rtErr.Op == OpNone {
			rtErr.Op = op
		}
		return rtErr
	}
	return &Error{Op: op, Code: 1, Cause: err}
}
