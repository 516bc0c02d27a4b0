// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"log"

	"github.com/sirupsen/logrus"
)

// SetOutput configures logging output for standard loggers.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	logrus.SetOutput(w)
}

// SetLogLevel sets the level for internal logging. Needs to be called
// very early during startup to configure logs emitted during
// initialization.
func SetLogLevel(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set log level. Valid log levels are:", logrus.AllLevels)
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&InternalFormatter{})
}

// InternalFormatter renders internal log entries as
// "time [level] message key=value".
type InternalFormatter struct{}

// Format suppresses the default logrus key ordering and quoting; the
// internal logs are read by humans on a console.
func (f *InternalFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	line := fmt.Sprintf("%s [%s] %s", entry.Time.Format("02 Jan 2006 15:04:05.000"), entry.Level, entry.Message)
	for key, value := range entry.Data {
		line += fmt.Sprintf(" %s=%v", key, value)
	}
	line += "\n"
	return []byte(line), nil
}
