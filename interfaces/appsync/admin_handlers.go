package appsync

import (
	"context"
	"encoding/json"

	"kernelworx-backend/application/access"
)

type adminListUsersInput struct {
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=60"`
	NextToken string `json:"nextToken"`
}

func (r *Resolver) adminListUsers(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	input := adminListUsersInput{}
	if len(raw) > 0 {
		if err := r.unmarshalArgs(raw, &input); err != nil {
			return nil, err
		}
	}
	return r.container.AdminService.AdminListUsers(ctx, caller, input.Limit, input.NextToken)
}

type adminSearchUserInput struct {
	Query string `json:"query" validate:"required,min=1"`
}

func (r *Resolver) adminSearchUser(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input adminSearchUserInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.AdminService.AdminSearchUser(ctx, caller, input.Query)
}

type adminUserInput struct {
	AccountID string `json:"accountId" validate:"required"`
}

func (r *Resolver) adminDeleteUser(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input adminUserInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.AdminService.AdminDeleteUser(ctx, caller, input.AccountID)
}

// adminCascadeOp runs one per-entity deletion step and returns its count.
func (r *Resolver) adminCascadeOp(
	ctx context.Context,
	caller access.Caller,
	raw json.RawMessage,
	op func(context.Context, access.Caller, string) (int, error),
) (interface{}, error) {
	var input adminUserInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return op(ctx, caller, input.AccountID)
}

func (r *Resolver) adminResetUserPassword(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input adminUserInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	if err := r.container.AdminService.AdminResetUserPassword(ctx, caller, input.AccountID); err != nil {
		return nil, err
	}
	return map[string]bool{"success": true}, nil
}

func (r *Resolver) adminGetUserProfiles(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input adminUserInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.AdminService.AdminGetUserProfiles(ctx, caller, input.AccountID)
}

func (r *Resolver) adminGetUserCatalogs(ctx context.Context, caller access.Caller, raw json.RawMessage) (interface{}, error) {
	var input adminUserInput
	if err := r.unmarshalArgs(raw, &input); err != nil {
		return nil, err
	}
	return r.container.AdminService.AdminGetUserCatalogs(ctx, caller, input.AccountID)
}
