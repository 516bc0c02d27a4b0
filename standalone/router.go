// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/orbitalsw/rtcontainer/rt/statejson"
)

// ContainerAPI is the container surface the standalone debug server
// drives. *rt.Container satisfies it.
type ContainerAPI interface {
	Start() error
	Stop() error
	Notify() error
	WaitForTermination() error
	Describe() statejson.ContainerDescription
}

// NewHTTPRouter returns the debug router bound to one container.
func NewHTTPRouter(cont ContainerAPI) *chi.Mux {
	r := chi.NewRouter()
	r.Use(accessLogDecorator)

	r.Get("/test/ping", func(w http.ResponseWriter, r *http.Request) { PingHandler(w, r) })
	r.Post("/test/start", func(w http.ResponseWriter, r *http.Request) { StartHandler(w, r, cont) })
	r.Post("/test/stop", func(w http.ResponseWriter, r *http.Request) { StopHandler(w, r, cont) })
	r.Post("/test/notify", func(w http.ResponseWriter, r *http.Request) { NotifyHandler(w, r, cont) })
	r.Post("/test/waitUntilTerminated", func(w http.ResponseWriter, r *http.Request) { WaitUntilTerminatedHandler(w, r, cont) })
	r.Get("/test/internalState", func(w http.ResponseWriter, r *http.Request) { InternalStateHandler(w, r, cont) })
	return r
}
