// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/internal/service"
	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/models"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:    http.StatusBadRequest,
	service.ErrAuth:          http.StatusUnauthorized,
	service.ErrToken:         http.StatusUnauthorized,
	service.ErrBlocked:       http.StatusForbidden,
	service.ErrForbidden:     http.StatusForbidden,
	service.ErrAuthorization: http.StatusForbidden,
	service.ErrNotFound:      http.StatusNotFound,

	utils.ErrInvalidJSONBody: http.StatusBadRequest,
	ErrInvalidID:             http.StatusBadRequest,
	ErrInvalidPagination:     http.StatusBadRequest,
}

// statusFromError returns the HTTP status of a classified error and 500 for
// everything else.
func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// clientMessage returns the text shown to the client for a 4xx error.
func clientMessage(err error) string {
	var serviceErr *service.Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	return err.Error()
}

// writeError responds with the envelope matching err. Server errors are
// logged and their details are never sent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "writeError").Msg("request failed")
		utils.WriteJSON(w, models.ErrorResponseOf(messageSomethingWentWrong), status)
		return
	}

	log.Debug().Err(err).Int("status", status).Msg("request rejected")
	utils.WriteJSON(w, models.FailResponse(clientMessage(err)), status)
}
