// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/models"
)

func (h *Handler) listPermissions(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	permissions, err := h.services.PermissionService.ListPermissions(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ListResponse("permissions", permissions), http.StatusOK)
}

func (h *Handler) createPermission(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePermissionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	permission, err := h.services.PermissionService.CreatePermission(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse("permission", permission), http.StatusCreated)
}

func (h *Handler) getPermission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	permission, err := h.services.PermissionService.GetPermission(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse("permission", permission), http.StatusOK)
}

func (h *Handler) updatePermission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdatePermissionRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	permission, err := h.services.PermissionService.UpdatePermission(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse("permission", permission), http.StatusOK)
}

func (h *Handler) deletePermission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.PermissionService.DeletePermission(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
