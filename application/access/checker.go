// Package access implements the owner/share permission model every protected
// operation depends on. The owner of a profile always has full access; anyone
// else needs a share whose permission set satisfies the request.
package access

import (
	"context"
	"fmt"

	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/permissions"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/pkg/identifiers"

	"go.uber.org/zap"
)

// Checker answers "does caller X have permission P on profile Y".
type Checker struct {
	profiles ports.ProfileRepository
	shares   ports.ShareRepository
	logger   *zap.Logger
}

// NewChecker creates a Checker.
func NewChecker(profiles ports.ProfileRepository, shares ports.ShareRepository, logger *zap.Logger) *Checker {
	return &Checker{
		profiles: profiles,
		shares:   shares,
		logger:   logger,
	}
}

// CheckProfileAccess reports whether the caller holds the required permission
// on the profile. Order matters: the owner lookup is strongly consistent and
// grants immediately; a profile that exists nowhere fails with NotFound so
// callers never confuse "no such profile" with "access denied"; otherwise the
// share record decides.
func (c *Checker) CheckProfileAccess(ctx context.Context, callerAccountID, profileID string, required permissions.Permission) (bool, error) {
	dbProfileID := identifiers.EnsureProfileID(profileID)
	dbCallerID := identifiers.EnsureAccountID(callerAccountID)

	owned, err := c.profiles.GetOwned(ctx, dbCallerID, dbProfileID)
	if err != nil {
		return false, err
	}
	if owned != nil {
		return true, nil
	}

	existing, err := c.profiles.FindByID(ctx, dbProfileID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, apperrors.NewNotFoundError(fmt.Sprintf("profile %s", profileID))
	}

	share, err := c.shares.Get(ctx, dbProfileID, dbCallerID)
	if err != nil {
		return false, err
	}
	if share == nil {
		return false, nil
	}
	return share.PermissionSet().Allows(required), nil
}

// RequireProfileAccess enforces CheckProfileAccess, failing with Forbidden.
func (c *Checker) RequireProfileAccess(ctx context.Context, callerAccountID, profileID string, required permissions.Permission) error {
	ok, err := c.CheckProfileAccess(ctx, callerAccountID, profileID, required)
	if err != nil {
		return err
	}
	if !ok {
		c.logger.Warn("profile access denied",
			zap.String("callerAccountId", callerAccountID),
			zap.String("profileId", profileID),
			zap.String("required", string(required)),
		)
		return apperrors.NewForbiddenError(fmt.Sprintf("You do not have %s access to this profile", required))
	}
	return nil
}

// IsProfileOwner reports whether the caller owns the profile, resolving the
// profile through the id-only index. Fails with NotFound when no such profile
// exists.
func (c *Checker) IsProfileOwner(ctx context.Context, callerAccountID, profileID string) (bool, error) {
	profile, err := c.FindProfile(ctx, profileID)
	if err != nil {
		return false, err
	}
	return profile.OwnedBy(callerAccountID), nil
}

// FindProfile resolves a profile by id alone, failing with NotFound.
func (c *Checker) FindProfile(ctx context.Context, profileID string) (*entities.Profile, error) {
	dbProfileID := identifiers.EnsureProfileID(profileID)
	profile, err := c.profiles.FindByID(ctx, dbProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile %s", profileID))
	}
	return profile, nil
}
