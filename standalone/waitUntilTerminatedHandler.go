// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
)

// WaitUntilTerminatedHandler blocks until the activation thread exits.
// Undefined if no thread was started or if two callers wait at once;
// the same restriction the container itself documents.
func WaitUntilTerminatedHandler(w http.ResponseWriter, r *http.Request, cont ContainerAPI) {
	if err := cont.WaitForTermination(); err != nil {
		log.WithError(err).Error("Failed to join activation thread")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, &ErrorResponse{
			ErrorType:    "Container.JoinError",
			ErrorMessage: err.Error(),
		})
		return
	}

	desc := cont.Describe()
	w.Write(desc.AsJSON())
}
