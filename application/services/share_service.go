package services

import (
	"context"
	"time"

	"kernelworx-backend/application/access"
	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/permissions"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/pkg/identifiers"

	"go.uber.org/zap"
)

// ShareService manages the grants that give non-owner accounts access to a
// profile. Only the profile's owner (or an admin) may create or revoke
// shares; a share's target may also drop their own grant.
type ShareService struct {
	shares   ports.ShareRepository
	accounts ports.AccountRepository
	checker  *access.Checker
	logger   *zap.Logger
}

// NewShareService creates a ShareService.
func NewShareService(shares ports.ShareRepository, accounts ports.AccountRepository, checker *access.Checker, logger *zap.Logger) *ShareService {
	return &ShareService{
		shares:   shares,
		accounts: accounts,
		checker:  checker,
		logger:   logger,
	}
}

// CreateShare grants the target account the given permissions on the profile.
// The owner never holds a share on their own profile, so sharing with the
// owner is rejected. Duplicate grants fail with Conflict; revoke first to
// change permissions.
func (s *ShareService) CreateShare(ctx context.Context, caller access.Caller, profileID, targetAccountID string, perms []string) (*entities.Share, error) {
	if profileID == "" || targetAccountID == "" {
		return nil, apperrors.NewValidationError("profileId and targetAccountId are required")
	}
	permSet := permissions.NormalizeStrings(perms)
	if len(permSet) == 0 {
		return nil, apperrors.NewValidationError("at least one valid permission (READ, WRITE) is required")
	}

	dbProfileID := identifiers.EnsureProfileID(profileID)
	dbTargetID := identifiers.EnsureAccountID(targetAccountID)

	profile, err := s.checker.FindProfile(ctx, dbProfileID)
	if err != nil {
		return nil, err
	}
	if !profile.OwnedBy(caller.AccountID) && !caller.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only the profile owner can share it")
	}
	if profile.OwnedBy(targetAccountID) {
		return nil, apperrors.NewValidationError("cannot share a profile with its owner")
	}

	target, err := s.accounts.Get(ctx, dbTargetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperrors.NewNotFoundError("target account")
	}

	share := &entities.Share{
		ProfileID:          dbProfileID,
		TargetAccountID:    dbTargetID,
		ShareID:            identifiers.NewShareID(),
		OwnerAccountID:     profile.OwnerAccountID,
		Permissions:        permSet.Strings(),
		CreatedByAccountID: identifiers.EnsureAccountID(caller.AccountID),
		CreatedAt:          time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.shares.PutIfAbsent(ctx, share); err != nil {
		return nil, err
	}

	s.logger.Info("share created",
		zap.String("profileId", dbProfileID),
		zap.String("targetAccountId", dbTargetID),
		zap.Strings("permissions", share.Permissions),
	)
	return share, nil
}

// ListShares returns every grant on a profile. Owner or admin only.
func (s *ShareService) ListShares(ctx context.Context, caller access.Caller, profileID string) ([]*entities.Share, error) {
	dbProfileID := identifiers.EnsureProfileID(profileID)

	profile, err := s.checker.FindProfile(ctx, dbProfileID)
	if err != nil {
		return nil, err
	}
	if !profile.OwnedBy(caller.AccountID) && !caller.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only the profile owner can list its shares")
	}
	return s.shares.ListByProfile(ctx, dbProfileID)
}

// RevokeShare removes a grant. The owner and admins may revoke any share on
// the profile; the target may revoke their own. Revoking an absent share is
// a no-op.
func (s *ShareService) RevokeShare(ctx context.Context, caller access.Caller, profileID, targetAccountID string) error {
	if profileID == "" || targetAccountID == "" {
		return apperrors.NewValidationError("profileId and targetAccountId are required")
	}

	dbProfileID := identifiers.EnsureProfileID(profileID)
	dbTargetID := identifiers.EnsureAccountID(targetAccountID)

	profile, err := s.checker.FindProfile(ctx, dbProfileID)
	if err != nil {
		return err
	}

	selfRevoke := dbTargetID == identifiers.EnsureAccountID(caller.AccountID)
	if !profile.OwnedBy(caller.AccountID) && !caller.IsAdmin() && !selfRevoke {
		return apperrors.NewForbiddenError("Only the profile owner can revoke shares")
	}

	if err := s.shares.Delete(ctx, dbProfileID, dbTargetID); err != nil {
		return err
	}

	s.logger.Info("share revoked",
		zap.String("profileId", dbProfileID),
		zap.String("targetAccountId", dbTargetID),
		zap.Bool("selfRevoke", selfRevoke),
	)
	return nil
}
