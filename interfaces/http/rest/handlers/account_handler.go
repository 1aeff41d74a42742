package handlers

import (
	"net/http"

	"kernelworx-backend/application/access"
	"kernelworx-backend/application/services"
	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/permissions"
	"kernelworx-backend/interfaces/http/rest/middleware"
	apperrors "kernelworx-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AccountHandler serves the caller's own account plus access checks and
// ownership transfers.
type AccountHandler struct {
	accounts  *services.AccountService
	transfers *services.TransferService
	checker   *access.Checker
	logger    *zap.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts *services.AccountService, transfers *services.TransferService, checker *access.Checker, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, transfers: transfers, checker: checker, logger: logger}
}

func callerOrFail(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (access.Caller, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondError(w, logger, apperrors.NewUnauthorizedError("no authenticated caller"))
		return access.Caller{}, false
	}
	return caller, true
}

// GetMyAccount handles GET /account
func (h *AccountHandler) GetMyAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	account, err := h.accounts.EnsureAccount(r.Context(), caller.AccountID, caller.Claims)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// UpdateMyAccount handles PATCH /account
func (h *AccountHandler) UpdateMyAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}

	var body struct {
		GivenName  *string `json:"givenName"`
		FamilyName *string `json:"familyName"`
		City       *string `json:"city"`
		State      *string `json:"state"`
		UnitType   *string `json:"unitType"`
		UnitNumber *int    `json:"unitNumber"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	account, err := h.accounts.UpdateMyAccount(r.Context(), caller.AccountID, entities.AccountUpdate{
		GivenName:  body.GivenName,
		FamilyName: body.FamilyName,
		City:       body.City,
		State:      body.State,
		UnitType:   body.UnitType,
		UnitNumber: body.UnitNumber,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// DeleteMyAccount handles DELETE /account
func (h *AccountHandler) DeleteMyAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}
	result, err := h.accounts.DeleteMyAccount(r.Context(), caller.AccountID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CheckProfileAccess handles GET /profiles/{profileID}/access?permission=READ
func (h *AccountHandler) CheckProfileAccess(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}

	perm, valid := permissions.Parse(r.URL.Query().Get("permission"))
	if !valid {
		respondError(w, h.logger, apperrors.NewValidationError("permission must be READ or WRITE"))
		return
	}

	allowed, err := h.checker.CheckProfileAccess(r.Context(), caller.AccountID, chi.URLParam(r, "profileID"), perm)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"allowed": allowed})
}

// TransferOwnership handles POST /profiles/{profileID}/transfer
func (h *AccountHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.logger)
	if !ok {
		return
	}

	var body struct {
		NewOwnerAccountID string `json:"newOwnerAccountId"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	profile, err := h.transfers.TransferOwnership(r.Context(), caller, chi.URLParam(r, "profileID"), body.NewOwnerAccountID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
