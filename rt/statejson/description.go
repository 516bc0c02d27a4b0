// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statejson

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// StateDescription ...
type StateDescription struct {
	Name         string `json:"name"`
	LastModified int64  `json:"lastModified"`
}

// ContainerDescription describes the internal state of a container for
// debugging purposes.
type ContainerDescription struct {
	ID             string           `json:"id"`
	State          StateDescription `json:"state"`
	NotifCounter   int64            `json:"notifCounter"`
	NotifPrStarted bool             `json:"notifPrStarted"`
	ActivPrStarted bool             `json:"activPrStarted"`
	ErrCode        int              `json:"errCode"`
	ErrOp          string           `json:"errOp,omitempty"`
}

func (d *ContainerDescription) AsJSON() []byte {
	bytes, err := json.Marshal(d)
	if err != nil {
		log.Panicf("Failed to marshal container description: %s", err)
	}
	return bytes
}
