// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/models"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// Instead of 405 it answers 404 with the usual fail envelope, so that an
// unsupported method does not reveal that the path exists. Requests whose
// method is registered for the exact path are forwarded to router.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; ok {
				router.ServeHTTP(w, r)
				return
			}
			break
		}

		utils.WriteJSON(w, models.FailResponse("can't find "+r.URL.Path+" on this server"), http.StatusNotFound)
	}
}
