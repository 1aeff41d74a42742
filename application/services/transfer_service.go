package services

import (
	"context"
	"time"

	"kernelworx-backend/application/access"
	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/events"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/pkg/identifiers"

	"go.uber.org/zap"
)

// TransferService moves a profile between accounts. Ownership lives in the
// profile's primary key, so the move is a delete under the old key followed
// by a put under the new one. The two writes are not transactional; a crash
// between them orphans the profile, which is why the deleted item is rebuilt
// in memory before the first write is issued.
type TransferService struct {
	profiles  ports.ProfileRepository
	shares    ports.ShareRepository
	accounts  ports.AccountRepository
	checker   *access.Checker
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewTransferService creates a TransferService.
func NewTransferService(
	profiles ports.ProfileRepository,
	shares ports.ShareRepository,
	accounts ports.AccountRepository,
	checker *access.Checker,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		profiles:  profiles,
		shares:    shares,
		accounts:  accounts,
		checker:   checker,
		publisher: publisher,
		logger:    logger,
	}
}

// TransferOwnership re-keys a profile to a new owning account.
//
// Preconditions, first failure wins:
//  1. the profile must exist,
//  2. the caller must be its current owner or an admin,
//  3. unless the caller is an admin, the new owner must already hold a
//     share on the profile. Ownership is only handed to accounts the owner
//     previously vetted with a share; admin-initiated transfers bypass this.
//
// After the move the share held by the new owner is deleted: an owner does
// not hold a share on their own profile. Its absence is tolerated, since an
// admin-initiated transfer may never have created one.
func (s *TransferService) TransferOwnership(ctx context.Context, caller access.Caller, profileID, newOwnerAccountID string) (*entities.Profile, error) {
	if profileID == "" || newOwnerAccountID == "" {
		return nil, apperrors.NewValidationError("profileId and newOwnerAccountId are required")
	}

	dbProfileID := identifiers.EnsureProfileID(profileID)
	dbNewOwnerID := identifiers.EnsureAccountID(newOwnerAccountID)

	profile, err := s.checker.FindProfile(ctx, dbProfileID)
	if err != nil {
		return nil, err
	}

	isAdmin := caller.IsAdmin()
	if !profile.OwnedBy(caller.AccountID) && !isAdmin {
		s.logger.Warn("ownership transfer denied",
			zap.String("callerAccountId", caller.AccountID),
			zap.String("profileId", dbProfileID),
		)
		return nil, apperrors.NewForbiddenError("Only the profile owner or an admin can transfer ownership")
	}

	if profile.OwnedBy(newOwnerAccountID) {
		return nil, apperrors.NewValidationError("new owner already owns this profile")
	}

	newOwner, err := s.accounts.Get(ctx, dbNewOwnerID)
	if err != nil {
		return nil, err
	}
	if newOwner == nil {
		return nil, apperrors.NewNotFoundError("new owner account")
	}

	if !isAdmin {
		share, err := s.shares.Get(ctx, dbProfileID, dbNewOwnerID)
		if err != nil {
			return nil, err
		}
		if share == nil {
			return nil, apperrors.NewValidationError("new owner must have existing access to this profile")
		}
	}

	previousOwnerID := profile.OwnerAccountID

	// Re-key: remove the item under the old owner, then reinsert it under
	// the new one. Not atomic; see the type comment.
	if err := s.profiles.Delete(ctx, previousOwnerID, dbProfileID); err != nil {
		return nil, apperrors.Wrap(err, "failed to remove profile from previous owner")
	}

	profile.OwnerAccountID = dbNewOwnerID
	profile.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.profiles.Put(ctx, profile); err != nil {
		s.logger.Error("profile deleted but re-insert failed, profile orphaned",
			zap.String("profileId", dbProfileID),
			zap.String("previousOwner", previousOwnerID),
			zap.String("newOwner", dbNewOwnerID),
			zap.Error(err),
		)
		return nil, apperrors.Wrap(err, "failed to assign profile to new owner")
	}

	// The new owner's share is now redundant. Best-effort: absence is fine.
	if err := s.shares.Delete(ctx, dbProfileID, dbNewOwnerID); err != nil {
		s.logger.Warn("failed to retire share after transfer",
			zap.String("profileId", dbProfileID),
			zap.String("targetAccountId", dbNewOwnerID),
			zap.Error(err),
		)
	}

	if pubErr := s.publisher.Publish(ctx, events.NewOwnershipTransferred(dbProfileID, previousOwnerID, dbNewOwnerID, isAdmin)); pubErr != nil {
		s.logger.Warn("failed to publish ownership transferred event", zap.Error(pubErr))
	}

	s.logger.Info("profile ownership transferred",
		zap.String("profileId", dbProfileID),
		zap.String("previousOwner", previousOwnerID),
		zap.String("newOwner", dbNewOwnerID),
		zap.Bool("adminInitiated", isAdmin),
	)
	return profile, nil
}
