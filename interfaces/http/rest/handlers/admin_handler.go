package handlers

import (
	"context"
	"net/http"
	"strconv"

	"kernelworx-backend/application/access"
	"kernelworx-backend/application/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler serves the administrative endpoints. Authorization happens in
// the service layer against the caller's token claims.
type AdminHandler struct {
	admin  *services.AdminService
	logger *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin *services.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// ListUsers handles GET /admin/users?limit=25&nextToken=...
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, err := h.admin.AdminListUsers(r.Context(), caller, limit, r.URL.Query().Get("nextToken"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// SearchUsers handles GET /admin/users/search?q=...
func (h *AdminHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	users, err := h.admin.AdminSearchUser(r.Context(), caller, r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /admin/users/{accountID}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	result, err := h.admin.AdminDeleteUser(r.Context(), caller, chi.URLParam(r, "accountID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// DeleteUserOrders handles DELETE /admin/users/{accountID}/orders
func (h *AdminHandler) DeleteUserOrders(w http.ResponseWriter, r *http.Request) {
	h.cascadeOp(w, r, h.admin.AdminDeleteUserOrders)
}

// DeleteUserCampaigns handles DELETE /admin/users/{accountID}/campaigns
func (h *AdminHandler) DeleteUserCampaigns(w http.ResponseWriter, r *http.Request) {
	h.cascadeOp(w, r, h.admin.AdminDeleteUserCampaigns)
}

// DeleteUserShares handles DELETE /admin/users/{accountID}/shares
func (h *AdminHandler) DeleteUserShares(w http.ResponseWriter, r *http.Request) {
	h.cascadeOp(w, r, h.admin.AdminDeleteUserShares)
}

// DeleteUserProfiles handles DELETE /admin/users/{accountID}/profiles
func (h *AdminHandler) DeleteUserProfiles(w http.ResponseWriter, r *http.Request) {
	h.cascadeOp(w, r, h.admin.AdminDeleteUserProfiles)
}

// DeleteUserCatalogs handles DELETE /admin/users/{accountID}/catalogs
func (h *AdminHandler) DeleteUserCatalogs(w http.ResponseWriter, r *http.Request) {
	h.cascadeOp(w, r, h.admin.AdminDeleteUserCatalogs)
}

func (h *AdminHandler) cascadeOp(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, access.Caller, string) (int, error),
) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	deleted, err := op(r.Context(), caller, chi.URLParam(r, "accountID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// ResetUserPassword handles POST /admin/users/{accountID}/reset-password
func (h *AdminHandler) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.admin.AdminResetUserPassword(r.Context(), caller, chi.URLParam(r, "accountID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetUserProfiles handles GET /admin/users/{accountID}/profiles
func (h *AdminHandler) GetUserProfiles(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	profiles, err := h.admin.AdminGetUserProfiles(r.Context(), caller, chi.URLParam(r, "accountID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

// GetUserCatalogs handles GET /admin/users/{accountID}/catalogs
func (h *AdminHandler) GetUserCatalogs(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	catalogs, err := h.admin.AdminGetUserCatalogs(r.Context(), caller, chi.URLParam(r, "accountID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, catalogs)
}
