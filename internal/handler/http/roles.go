// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/Aruba-Creative/nokan-api/internal/utils"
	"github.com/Aruba-Creative/nokan-api/models"
)

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.services.RoleService.ListRoles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ListResponse("roles", roles), http.StatusOK)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoleRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	role, err := h.services.RoleService.CreateRole(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse("role", role), http.StatusCreated)
}

func (h *Handler) getRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	role, err := h.services.RoleService.GetRole(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse("role", role), http.StatusOK)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateRoleRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	role, err := h.services.RoleService.UpdateRole(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse("role", role), http.StatusOK)
}

// updateRolePermissions replaces the permission set of a role.
func (h *Handler) updateRolePermissions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateRolePermissionsRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	role, err := h.services.RoleService.UpdateRolePermissions(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse("role", role), http.StatusOK)
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.RoleService.DeleteRole(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
