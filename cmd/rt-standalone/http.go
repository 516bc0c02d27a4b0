// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/orbitalsw/rtcontainer/standalone"
)

func startHTTPServer(ipport string, cont standalone.ContainerAPI) {
	srv := &http.Server{
		Addr:    ipport,
		Handler: standalone.NewHTTPRouter(cont),
	}

	log.Infof("Listening on %s", ipport)
	if err := srv.ListenAndServe(); err != nil {
		log.Panic(err)
	}
}
