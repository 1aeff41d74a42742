package handlers

import (
	"net/http"

	"kernelworx-backend/application/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShareHandler serves share and invite operations.
type ShareHandler struct {
	shares  *services.ShareService
	invites *services.InviteService
	logger  *zap.Logger
}

// NewShareHandler creates a ShareHandler.
func NewShareHandler(shares *services.ShareService, invites *services.InviteService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{shares: shares, invites: invites, logger: logger}
}

// CreateShare handles POST /profiles/{profileID}/shares
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}

	var body struct {
		TargetAccountID string   `json:"targetAccountId"`
		Permissions     []string `json:"permissions"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	share, err := h.shares.CreateShare(r.Context(), caller, chi.URLParam(r, "profileID"), body.TargetAccountID, body.Permissions)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, share)
}

// ListShares handles GET /profiles/{profileID}/shares
func (h *ShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	shares, err := h.shares.ListShares(r.Context(), caller, chi.URLParam(r, "profileID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, shares)
}

// RevokeShare handles DELETE /profiles/{profileID}/shares/{accountID}
func (h *ShareHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.shares.RevokeShare(r.Context(), caller, chi.URLParam(r, "profileID"), chi.URLParam(r, "accountID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateInvite handles POST /profiles/{profileID}/invites
func (h *ShareHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}

	var body struct {
		Permissions []string `json:"permissions"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	invite, err := h.invites.CreateInvite(r.Context(), caller, chi.URLParam(r, "profileID"), body.Permissions)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, invite)
}

// RedeemInvite handles POST /invites/{inviteCode}/redeem
func (h *ShareHandler) RedeemInvite(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	share, err := h.invites.RedeemInvite(r.Context(), caller, chi.URLParam(r, "inviteCode"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, share)
}

// RevokeInvite handles DELETE /invites/{inviteCode}
func (h *ShareHandler) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.invites.RevokeInvite(r.Context(), caller, chi.URLParam(r, "inviteCode")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
