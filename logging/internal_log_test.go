// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPrint(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	log.Print("hello log")
	assert.Contains(t, buf.String(), "hello log")
}

func TestLogrusPrint(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	logrus.Print("hello logrus")
	assert.Contains(t, buf.String(), "hello logrus")
}

func TestInternalFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2021, time.March, 12, 9, 30, 5, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "container stopped",
		Data:    logrus.Fields{"cycles": 3},
	}

	line, err := (&InternalFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(line), "12 Mar 2021 09:30:05.000")
	assert.Contains(t, string(line), "[warning]")
	assert.Contains(t, string(line), "container stopped")
	assert.Contains(t, string(line), "cycles=3")
}
