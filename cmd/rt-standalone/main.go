// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/orbitalsw/rtcontainer/logging"
	"github.com/orbitalsw/rtcontainer/rt"
)

type options struct {
	LogLevel    string `long:"log-level" default:"info" description:"log level"`
	Listen      string `long:"listen" default:"0.0.0.0:8080" description:"debug API address"`
	Activations int64  `long:"activations" default:"10" description:"functional behaviour completes after this many executions"`
}

// activationBudget is the demo user data: the functional behaviour
// counts down and reports completion at zero.
type activationBudget struct {
	remaining int64
}

func main() {
	opts := getCLIArgs()
	logging.SetLogLevel(opts.LogLevel)

	cont := rt.New()
	cont.SetData(&activationBudget{remaining: opts.Activations})
	cont.SetExecFuncBehaviour(func(c *rt.Container) bool {
		budget := c.GetData().(*activationBudget)
		budget.remaining--
		log.Infof("functional behaviour executed, %d activations remaining", budget.remaining)
		return budget.remaining <= 0
	})
	if err := cont.Init(); err != nil {
		log.WithError(err).Fatal("Failed to initialize container")
	}

	startHTTPServer(opts.Listen, cont)
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(os.Args); err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}
	return opts
}
