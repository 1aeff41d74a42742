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

const (
	inviteTTL            = 7 * 24 * time.Hour
	inviteCreateAttempts = 3
)

// InviteService issues and redeems share invitations. An invite is a short
// code the owner hands out; redeeming it creates the share for whoever
// presents the code, without the owner needing to know their account id.
type InviteService struct {
	invites ports.InviteRepository
	shares  ports.ShareRepository
	checker *access.Checker
	logger  *zap.Logger
}

// NewInviteService creates an InviteService.
func NewInviteService(invites ports.InviteRepository, shares ports.ShareRepository, checker *access.Checker, logger *zap.Logger) *InviteService {
	return &InviteService{
		invites: invites,
		shares:  shares,
		checker: checker,
		logger:  logger,
	}
}

// CreateInvite mints an invite code for a profile. Owner only. The code space
// is small, so creation retries on a collision; the conditional put makes the
// collision visible instead of silently overwriting someone else's invite.
func (s *InviteService) CreateInvite(ctx context.Context, caller access.Caller, profileID string, perms []string) (*entities.Invite, error) {
	if profileID == "" {
		return nil, apperrors.NewValidationError("profileId is required")
	}
	permSet := permissions.NormalizeStrings(perms)
	if len(permSet) == 0 {
		return nil, apperrors.NewValidationError("at least one valid permission (READ, WRITE) is required")
	}

	dbProfileID := identifiers.EnsureProfileID(profileID)
	profile, err := s.checker.FindProfile(ctx, dbProfileID)
	if err != nil {
		return nil, err
	}
	if !profile.OwnedBy(caller.AccountID) && !caller.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only the profile owner can create invites")
	}

	now := time.Now().UTC()
	invite := &entities.Invite{
		ProfileID:      dbProfileID,
		OwnerAccountID: profile.OwnerAccountID,
		Permissions:    permSet.Strings(),
		CreatedAt:      now.Format(time.RFC3339),
		ExpiresAt:      now.Add(inviteTTL).Format(time.RFC3339),
	}

	for attempt := 0; attempt < inviteCreateAttempts; attempt++ {
		invite.InviteCode = identifiers.NewInviteCode()
		err = s.invites.PutIfAbsent(ctx, invite)
		if err == nil {
			s.logger.Info("invite created",
				zap.String("profileId", dbProfileID),
				zap.String("inviteCode", invite.InviteCode),
			)
			return invite, nil
		}
		if !apperrors.IsConflict(err) {
			return nil, err
		}
	}
	return nil, apperrors.NewInternalError("could not allocate a unique invite code")
}

// RedeemInvite consumes an invite code, creating a share on the invite's
// profile for the caller. Used or expired codes are rejected; the owner
// cannot redeem their own invite. An existing share for the caller makes the
// redeem a no-op grant but the code is still consumed.
func (s *InviteService) RedeemInvite(ctx context.Context, caller access.Caller, inviteCode string) (*entities.Share, error) {
	if inviteCode == "" {
		return nil, apperrors.NewValidationError("inviteCode is required")
	}

	invite, err := s.invites.Get(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, apperrors.NewNotFoundError("invite")
	}
	if invite.Used {
		return nil, apperrors.NewConflictError("invite has already been used")
	}
	if invite.ExpiresAt != "" {
		expires, parseErr := time.Parse(time.RFC3339, invite.ExpiresAt)
		if parseErr == nil && time.Now().UTC().After(expires) {
			return nil, apperrors.NewConflictError("invite has expired")
		}
	}

	dbCallerID := identifiers.EnsureAccountID(caller.AccountID)
	if dbCallerID == identifiers.EnsureAccountID(invite.OwnerAccountID) {
		return nil, apperrors.NewValidationError("cannot redeem an invite to your own profile")
	}

	share := &entities.Share{
		ProfileID:          invite.ProfileID,
		TargetAccountID:    dbCallerID,
		ShareID:            identifiers.NewShareID(),
		OwnerAccountID:     invite.OwnerAccountID,
		Permissions:        invite.Permissions,
		CreatedByAccountID: identifiers.EnsureAccountID(invite.OwnerAccountID),
		CreatedAt:          time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.shares.PutIfAbsent(ctx, share); err != nil {
		if !apperrors.IsConflict(err) {
			return nil, err
		}
		// Caller already holds a share; keep it and just consume the code.
		existing, getErr := s.shares.Get(ctx, invite.ProfileID, dbCallerID)
		if getErr != nil {
			return nil, getErr
		}
		share = existing
	}

	if err := s.invites.MarkUsed(ctx, inviteCode, dbCallerID); err != nil {
		s.logger.Warn("share created but invite not marked used",
			zap.String("inviteCode", inviteCode),
			zap.Error(err),
		)
	}

	s.logger.Info("invite redeemed",
		zap.String("inviteCode", inviteCode),
		zap.String("profileId", invite.ProfileID),
		zap.String("redeemedBy", dbCallerID),
	)
	return share, nil
}

// RevokeInvite deletes an unredeemed invite. Owner or admin only.
func (s *InviteService) RevokeInvite(ctx context.Context, caller access.Caller, inviteCode string) error {
	if inviteCode == "" {
		return apperrors.NewValidationError("inviteCode is required")
	}

	invite, err := s.invites.Get(ctx, inviteCode)
	if err != nil {
		return err
	}
	if invite == nil {
		return apperrors.NewNotFoundError("invite")
	}

	dbCallerID := identifiers.EnsureAccountID(caller.AccountID)
	if dbCallerID != identifiers.EnsureAccountID(invite.OwnerAccountID) && !caller.IsAdmin() {
		return apperrors.NewForbiddenError("Only the invite's creator can revoke it")
	}
	return s.invites.Delete(ctx, inviteCode)
}
