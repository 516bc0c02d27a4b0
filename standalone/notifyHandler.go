// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
)

func NotifyHandler(w http.ResponseWriter, r *http.Request, cont ContainerAPI) {
	if err := cont.Notify(); err != nil {
		log.WithError(err).Error("Failed to notify container")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, &ErrorResponse{
			ErrorType:    "Container.NotifyError",
			ErrorMessage: err.Error(),
		})
		return
	}

	desc := cont.Describe()
	w.Write(desc.AsJSON())
}
