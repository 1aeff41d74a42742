package appsync

import (
	"context"
	"encoding/json"

	"kernelworx-backend/application/access"
)

type createShareInput struct {
	ProfileID       string   `json:"profileId" validate:"required"`
	TargetAccountID string   `json:"targetAccountId" validate:"required"`
	Permissions     []string `json:"permissions" validate:"required,min=1,dive,oneof=READ WRITE"`
}

func (r *Resolver) createShare(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input createShareInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.ShareService.CreateShare(ctx, caller, input.ProfileID, input.TargetAccountID, input.Permissions)
}

type listProfileSharesInput struct {
	ProfileID string `json:"profileId" validate:"required"`
}

func (r *Resolver) listProfileShares(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input listProfileSharesInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.ShareService.ListShares(ctx, caller, input.ProfileID)
}

type revokeShareInput struct {
	ProfileID       string `json:"profileId" validate:"required"`
	TargetAccountID string `json:"targetAccountId" validate:"required"`
}

func (r *Resolver) revokeShare(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input revokeShareInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	if err := r.container.ShareService.RevokeShare(ctx, caller, input.ProfileID, input.TargetAccountID); err != nil {
		return nil, err
	}
	return map[string]bool{"success": true}, nil
}

type createInviteInput struct {
	ProfileID   string   `json:"profileId" validate:"required"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,oneof=READ WRITE"`
}

func (r *Resolver) createInvite(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input createInviteInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.InviteService.CreateInvite(ctx, caller, input.ProfileID, input.Permissions)
}

type redeemInviteInput struct {
	InviteCode string `json:"inviteCode" validate:"required"`
}

func (r *Resolver) redeemInvite(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input redeemInviteInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.InviteService.RedeemInvite(ctx, caller, input.InviteCode)
}

type revokeInviteInput struct {
	InviteCode string `json:"inviteCode" validate:"required"`
}

func (r *Resolver) revokeInvite(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input revokeInviteInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	if err := r.container.InviteService.RevokeInvite(ctx, caller, input.InviteCode); err != nil {
		return nil, err
	}
	return map[string]bool{"success": true}, nil
}
