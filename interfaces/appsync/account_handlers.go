package appsync

import (
	"context"
	"encoding/json"

	"kernelworx-backend/application/access"
	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/permissions"
	apperrors "kernelworx-backend/pkg/errors"
)

func (r *Resolver) getMyAccount(ctx context.Context, caller access.Caller) (interface{}, error) {
	return r.container.AccountService.GetMyAccount(ctx, caller.AccountID)
}

func (r *Resolver) ensureAccount(ctx context.Context, caller access.Caller) (interface{}, error) {
	return r.container.AccountService.EnsureAccount(ctx, caller.AccountID, caller.Claims)
}

type updateMyAccountInput struct {
	GivenName  *string `json:"givenName" validate:"omitempty,max=100"`
	FamilyName *string `json:"familyName" validate:"omitempty,max=100"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	State      *string `json:"state" validate:"omitempty,max=50"`
	UnitType   *string `json:"unitType" validate:"omitempty,max=50"`
	UnitNumber *int    `json:"unitNumber" validate:"omitempty,min=0"`
}

func (r *Resolver) updateMyAccount(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input updateMyAccountInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.AccountService.UpdateMyAccount(ctx, caller.AccountID, entities.AccountUpdate{
		GivenName:  input.GivenName,
		FamilyName: input.FamilyName,
		City:       input.City,
		State:      input.State,
		UnitType:   input.UnitType,
		UnitNumber: input.UnitNumber,
	})
}

func (r *Resolver) deleteMyAccount(ctx context.Context, caller access.Caller) (interface{}, error) {
	return r.container.AccountService.DeleteMyAccount(ctx, caller.AccountID)
}

type checkProfileAccessInput struct {
	ProfileID  string `json:"profileId" validate:"required"`
	Permission string `json:"permission" validate:"required,oneof=READ WRITE"`
}

func (r *Resolver) checkProfileAccess(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input checkProfileAccessInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	perm, ok := permissions.Parse(input.Permission)
	if !ok {
		return nil, apperrors.NewValidationError("permission must be READ or WRITE")
	}
	allowed, err := r.container.Checker.CheckProfileAccess(ctx, caller.AccountID, input.ProfileID, perm)
	if err != nil {
		return nil, err
	}
	return map[string]bool{"allowed": allowed}, nil
}

type transferOwnershipInput struct {
	ProfileID         string `json:"profileId" validate:"required"`
	NewOwnerAccountID string `json:"newOwnerAccountId" validate:"required"`
}

func (r *Resolver) transferProfileOwnership(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input transferOwnershipInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.TransferService.TransferOwnership(ctx, caller, input.ProfileID, input.NewOwnerAccountID)
}
