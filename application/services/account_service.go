package services

import (
	"context"
	"time"

	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/events"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/pkg/identifiers"

	"go.uber.org/zap"
)

// AccountService owns the account record lifecycle: creation on first login,
// self-service profile edits, and self-service deletion.
type AccountService struct {
	accounts  ports.AccountRepository
	purge     *PurgeService
	identity  ports.IdentityProvider
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(
	accounts ports.AccountRepository,
	purge *PurgeService,
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		purge:     purge,
		identity:  identity,
		publisher: publisher,
		logger:    logger,
	}
}

// GetMyAccount returns the caller's account record.
func (s *AccountService) GetMyAccount(ctx context.Context, callerAccountID string) (*entities.Account, error) {
	account, err := s.accounts.Get(ctx, identifiers.EnsureAccountID(callerAccountID))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("account")
	}
	return account, nil
}

// EnsureAccount returns the caller's account record, creating it from the
// token claims on first login. Creation is idempotent: a concurrent first
// login may race, and last write wins on identical claim-derived fields.
func (s *AccountService) EnsureAccount(ctx context.Context, callerAccountID string, claims map[string]interface{}) (*entities.Account, error) {
	dbAccountID := identifiers.EnsureAccountID(callerAccountID)

	existing, err := s.accounts.Get(ctx, dbAccountID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	account := &entities.Account{
		AccountID:  dbAccountID,
		Email:      stringClaim(claims, "email"),
		GivenName:  stringClaim(claims, "given_name"),
		FamilyName: stringClaim(claims, "family_name"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.accounts.Put(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("created account record on first login", zap.String("accountId", dbAccountID))
	return account, nil
}

// UpdateMyAccount applies the caller's profile edits. Email is owned by the
// identity provider and cannot be changed here.
func (s *AccountService) UpdateMyAccount(ctx context.Context, callerAccountID string, update entities.AccountUpdate) (*entities.Account, error) {
	if update.IsEmpty() {
		return nil, apperrors.NewValidationError("no fields to update")
	}
	return s.accounts.Update(ctx, identifiers.EnsureAccountID(callerAccountID), update)
}

// DeleteMyAccountResult reports what a completed self-service deletion removed.
type DeleteMyAccountResult struct {
	Counts          PurgeCounts `json:"counts"`
	IdentityDeleted bool        `json:"identityDeleted"`
}

// DeleteMyAccount removes everything the caller owns, then the account record,
// then the identity-provider user, in that order. Store-side work runs under
// the strict policy: any failure aborts before the identity provider is
// touched, leaving the user able to log in and retry. The whole operation is
// idempotent, so a retry after a partial failure finds less to do and
// converges. An already-absent identity user counts as success.
func (s *AccountService) DeleteMyAccount(ctx context.Context, callerAccountID string) (*DeleteMyAccountResult, error) {
	dbAccountID := identifiers.EnsureAccountID(callerAccountID)
	sub := identifiers.StripAccountID(callerAccountID)

	s.logger.Info("starting self-service account deletion", zap.String("accountId", dbAccountID))

	counts, err := s.purge.PurgeAll(ctx, callerAccountID, Strict)
	if err != nil {
		s.logger.Error("account deletion aborted during data purge",
			zap.String("accountId", dbAccountID),
			zap.Error(err),
		)
		return nil, apperrors.Wrap(err, "failed to delete account data")
	}

	if err := s.accounts.Delete(ctx, dbAccountID); err != nil {
		s.logger.Error("account deletion aborted removing account record",
			zap.String("accountId", dbAccountID),
			zap.Error(err),
		)
		return nil, apperrors.Wrap(err, "failed to delete account record")
	}

	identityDeleted, err := s.deleteIdentityUser(ctx, sub)
	if err != nil {
		// All store data is gone but the login still exists. Surface the
		// failure so the client retries; the retry purges nothing and goes
		// straight to the provider.
		s.logger.Error("account deletion failed at identity provider",
			zap.String("accountId", dbAccountID),
			zap.Error(err),
		)
		return nil, apperrors.Wrap(err, "failed to delete user account")
	}

	if pubErr := s.publisher.Publish(ctx, events.NewAccountDeleted(dbAccountID, counts.Profiles, counts.Orders, true)); pubErr != nil {
		s.logger.Warn("failed to publish account deleted event", zap.Error(pubErr))
	}

	s.logger.Info("self-service account deletion completed",
		zap.String("accountId", dbAccountID),
		zap.Int("profiles", counts.Profiles),
		zap.Int("orders", counts.Orders),
		zap.Bool("identityDeleted", identityDeleted),
	)
	return &DeleteMyAccountResult{Counts: counts, IdentityDeleted: identityDeleted}, nil
}

// deleteIdentityUser removes the provider-side user for a subject id. Returns
// false when the user was already gone, which a retried deletion expects.
func (s *AccountService) deleteIdentityUser(ctx context.Context, sub string) (bool, error) {
	user, err := s.identity.FindUserBySub(ctx, sub)
	if err != nil {
		return false, err
	}
	if user == nil {
		s.logger.Info("identity user already absent", zap.String("sub", sub))
		return false, nil
	}

	if err := s.identity.DeleteUser(ctx, user.Username); err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if claims == nil {
		return ""
	}
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
