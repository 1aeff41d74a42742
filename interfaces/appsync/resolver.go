package appsync

import (
	"context"
	"encoding/json"
	"fmt"

	"kernelworx-backend/application/access"
	"kernelworx-backend/infrastructure/di"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Resolver dispatches AppSync field invocations to the application services.
type Resolver struct {
	container *di.Container
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(container *di.Container) *Resolver {
	return &Resolver{
		container: container,
		validate:  validator.New(),
		logger:    container.Logger,
	}
}

// Handle resolves one field invocation. Errors leave as "TYPE: message"
// strings so the GraphQL layer can classify them; collaborator error text
// never passes through.
func (r *Resolver) Handle(ctx context.Context, event Event) (interface{}, error) {
	caller, err := callerFromEvent(event)
	if err != nil {
		return nil, toResolverError(r.logger, event.Info.FieldName, err)
	}

	r.logger.Info("resolving field",
		zap.String("fieldName", event.Info.FieldName),
		zap.String("callerAccountId", caller.AccountID),
	)

	result, err := r.dispatch(ctx, caller, event)
	if err != nil {
		return nil, toResolverError(r.logger, event.Info.FieldName, err)
	}
	return result, nil
}

func (r *Resolver) dispatch(ctx context.Context, caller access.Caller, event Event) (interface{}, error) {
	switch event.Info.FieldName {
	case "getMyAccount":
		return r.getMyAccount(ctx, caller)
	case "ensureAccount":
		return r.ensureAccount(ctx, caller)
	case "updateMyAccount":
		return r.updateMyAccount(ctx, caller, event.Arguments)
	case "deleteMyAccount":
		return r.deleteMyAccount(ctx, caller)
	case "checkProfileAccess":
		return r.checkProfileAccess(ctx, caller, event.Arguments)
	case "transferProfileOwnership":
		return r.transferProfileOwnership(ctx, caller, event.Arguments)
	case "createShare":
		return r.createShare(ctx, caller, event.Arguments)
	case "listProfileShares":
		return r.listProfileShares(ctx, caller, event.Arguments)
	case "revokeShare":
		return r.revokeShare(ctx, caller, event.Arguments)
	case "createInvite":
		return r.createInvite(ctx, caller, event.Arguments)
	case "redeemInvite":
		return r.redeemInvite(ctx, caller, event.Arguments)
	case "revokeInvite":
		return r.revokeInvite(ctx, caller, event.Arguments)
	case "adminListUsers":
		return r.adminListUsers(ctx, caller, event.Arguments)
	case "adminSearchUser":
		return r.adminSearchUser(ctx, caller, event.Arguments)
	case "adminDeleteUser":
		return r.adminDeleteUser(ctx, caller, event.Arguments)
	case "adminDeleteUserOrders":
		return r.adminCascadeOp(ctx, caller, event.Arguments, r.container.AdminService.AdminDeleteUserOrders)
	case "adminDeleteUserCampaigns":
		return r.adminCascadeOp(ctx, caller, event.Arguments, r.container.AdminService.AdminDeleteUserCampaigns)
	case "adminDeleteUserShares":
		return r.adminCascadeOp(ctx, caller, event.Arguments, r.container.AdminService.AdminDeleteUserShares)
	case "adminDeleteUserProfiles":
		return r.adminCascadeOp(ctx, caller, event.Arguments, r.container.AdminService.AdminDeleteUserProfiles)
	case "adminDeleteUserCatalogs":
		return r.adminCascadeOp(ctx, caller, event.Arguments, r.container.AdminService.AdminDeleteUserCatalogs)
	case "adminResetUserPassword":
		return r.adminResetUserPassword(ctx, caller, event.Arguments)
	case "adminGetUserProfiles":
		return r.adminGetUserProfiles(ctx, caller, event.Arguments)
	case "adminGetUserCatalogs":
		return r.adminGetUserCatalogs(ctx, caller, event.Arguments)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown field %q", event.Info.FieldName))
	}
}

// callerFromEvent extracts the authenticated caller. AppSync has already
// validated the token; a missing identity means the field was invoked
// through an unauthenticated auth mode this resolver does not serve.
func callerFromEvent(event Event) (access.Caller, error) {
	if event.Identity == nil || event.Identity.Sub == "" {
		return access.Caller{}, apperrors.NewUnauthorizedError("request has no authenticated identity")
	}

	claims := event.Identity.Claims
	if claims == nil {
		claims = map[string]interface{}{}
	}
	// Some auth configurations surface groups beside the claims instead of
	// inside them; fold them in so admin checks see one shape.
	if _, ok := claims["cognito:groups"]; !ok && len(event.Identity.Groups) > 0 {
		claims["cognito:groups"] = event.Identity.Groups
	}

	return access.Caller{AccountID: event.Identity.Sub, Claims: claims}, nil
}

// unmarshalArgs decodes and validates a field's arguments.
func (r *Resolver) unmarshalArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return apperrors.NewValidationError("missing arguments")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return apperrors.NewValidationError("malformed arguments")
	}
	if err := r.validate.Struct(v); err != nil {
		return apperrors.NewValidationError(utils.FormatValidationErrors(err))
	}
	return nil
}

// toResolverError flattens an error into the "TYPE: message" form surfaced
// through GraphQL. Unexpected errors are logged with full context and leave
// as a generic internal error.
func toResolverError(logger *zap.Logger, fieldName string, err error) error {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		appErr = apperrors.NewInternalError("internal error").WithCause(err)
	}

	switch appErr.Type {
	case apperrors.ErrorTypeDatabase, apperrors.ErrorTypeExternal, apperrors.ErrorTypeInternal:
		logger.Error("field resolution failed",
			zap.String("fieldName", fieldName),
			zap.String("errorType", string(appErr.Type)),
			zap.Error(err),
		)
		return fmt.Errorf("%s: %s", apperrors.ErrorTypeInternal, appErr.Message)
	default:
		logger.Info("field resolution rejected",
			zap.String("fieldName", fieldName),
			zap.String("errorType", string(appErr.Type)),
			zap.String("message", appErr.Message),
		)
		return fmt.Errorf("%s: %s", appErr.Type, appErr.Message)
	}
}
