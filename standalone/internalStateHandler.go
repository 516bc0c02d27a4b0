// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"
)

func InternalStateHandler(w http.ResponseWriter, r *http.Request, cont ContainerAPI) {
	desc := cont.Describe()
	w.Write(desc.AsJSON())
}
