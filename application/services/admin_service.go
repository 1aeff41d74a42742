package services

import (
	"context"
	"strings"

	"kernelworx-backend/application/access"
	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/events"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/pkg/identifiers"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSearchLimit = 25

// AdminService implements the administrative operations: user directory
// listing and search, bulk user deletion, password resets, and read access
// to any account's profiles and catalogs. Every entry point requires the
// admin claim.
type AdminService struct {
	accounts  ports.AccountRepository
	profiles  ports.ProfileRepository
	catalogs  ports.CatalogRepository
	purge     *PurgeService
	identity  ports.IdentityProvider
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewAdminService creates an AdminService.
func NewAdminService(
	accounts ports.AccountRepository,
	profiles ports.ProfileRepository,
	catalogs ports.CatalogRepository,
	purge *PurgeService,
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		accounts:  accounts,
		profiles:  profiles,
		catalogs:  catalogs,
		purge:     purge,
		identity:  identity,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *AdminService) requireAdmin(caller access.Caller) error {
	if !caller.IsAdmin() {
		s.logger.Warn("admin operation denied", zap.String("callerAccountId", caller.AccountID))
		return apperrors.NewForbiddenError("Admin access required")
	}
	return nil
}

// AdminUser is a directory entry enriched with store-side account data and
// group membership.
type AdminUser struct {
	Sub       string   `json:"sub"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Name      string   `json:"name,omitempty"`
	Status    string   `json:"status"`
	Enabled   bool     `json:"enabled"`
	Groups    []string `json:"groups"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// AdminUserPage is one page of the user directory.
type AdminUserPage struct {
	Users     []*AdminUser `json:"users"`
	NextToken string       `json:"nextToken,omitempty"`
}

// AdminListUsers pages through the identity provider's user pool, enriching
// each entry with the matching account record and group membership. Group
// lookups are best-effort; a directory entry with no account record still
// appears, since registration may not have completed.
func (s *AdminService) AdminListUsers(ctx context.Context, caller access.Caller, limit int, nextToken string) (*AdminUserPage, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	users, token, err := s.identity.ListUsers(ctx, limit, nextToken)
	if err != nil {
		return nil, err
	}

	page := &AdminUserPage{Users: make([]*AdminUser, 0, len(users)), NextToken: token}
	for _, u := range users {
		page.Users = append(page.Users, s.enrich(ctx, u))
	}
	return page, nil
}

// AdminSearchUser resolves a free-form query to directory entries. The query
// shape picks the strategy: a UUID or prefixed account id resolves by subject,
// an @-containing string by exact email then email prefix, and anything else
// by a fuzzy scan over account emails and names.
func (s *AdminService) AdminSearchUser(ctx context.Context, caller access.Caller, query string) ([]*AdminUser, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}

	if sub, ok := subjectFromQuery(query); ok {
		user, err := s.identity.FindUserBySub(ctx, sub)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return []*AdminUser{}, nil
		}
		return []*AdminUser{s.enrich(ctx, user)}, nil
	}

	if strings.Contains(query, "@") {
		user, err := s.identity.FindUserByEmail(ctx, query)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return []*AdminUser{s.enrich(ctx, user)}, nil
		}
		users, err := s.identity.SearchUsersByEmailPrefix(ctx, query, defaultSearchLimit)
		if err != nil {
			return nil, err
		}
		results := make([]*AdminUser, 0, len(users))
		for _, u := range users {
			results = append(results, s.enrich(ctx, u))
		}
		return results, nil
	}

	// Fuzzy match over account records, then resolve each hit back to its
	// directory entry so the result shape is uniform.
	accounts, err := s.accounts.SearchByText(ctx, query, defaultSearchLimit)
	if err != nil {
		return nil, err
	}
	results := make([]*AdminUser, 0, len(accounts))
	for _, account := range accounts {
		sub := identifiers.StripAccountID(account.AccountID)
		user, err := s.identity.FindUserBySub(ctx, sub)
		if err != nil {
			s.logger.Warn("failed to resolve account to directory entry",
				zap.String("accountId", account.AccountID), zap.Error(err))
			continue
		}
		if user == nil {
			continue
		}
		results = append(results, s.enrich(ctx, user))
	}
	return results, nil
}

// AdminDeleteUserResult reports what an admin-initiated deletion removed.
type AdminDeleteUserResult struct {
	Counts          PurgeCounts `json:"counts"`
	AccountDeleted  bool        `json:"accountDeleted"`
	IdentityDeleted bool        `json:"identityDeleted"`
}

// AdminDeleteUser removes a user's directory entry, account record, and data.
// Admins cannot delete themselves through this path; the self-service flow
// exists for that. The directory entry goes first and its absence is NotFound;
// everything after it is best-effort so a bad row cannot leave the user able
// to log back in.
func (s *AdminService) AdminDeleteUser(ctx context.Context, caller access.Caller, targetAccountID string) (*AdminDeleteUserResult, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	if targetAccountID == "" {
		return nil, apperrors.NewValidationError("accountId is required")
	}

	dbTargetID := identifiers.EnsureAccountID(targetAccountID)
	if dbTargetID == identifiers.EnsureAccountID(caller.AccountID) {
		return nil, apperrors.NewValidationError("admins cannot delete their own account through this operation")
	}

	s.logger.Info("starting admin user deletion",
		zap.String("callerAccountId", caller.AccountID),
		zap.String("targetAccountId", dbTargetID),
	)

	sub := identifiers.StripAccountID(dbTargetID)
	user, err := s.identity.FindUserBySub(ctx, sub)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user")
	}
	if err := s.identity.DeleteUser(ctx, user.Username); err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	result := &AdminDeleteUserResult{IdentityDeleted: true}

	counts, err := s.purge.PurgeAll(ctx, targetAccountID, BestEffort)
	if err != nil {
		s.logger.Warn("user data purge incomplete", zap.String("accountId", dbTargetID), zap.Error(err))
	}
	result.Counts = counts

	if err := s.accounts.Delete(ctx, dbTargetID); err != nil {
		// Users who never completed a login have no account record.
		s.logger.Warn("failed to delete account record", zap.String("accountId", dbTargetID), zap.Error(err))
	} else {
		result.AccountDeleted = true
	}

	if pubErr := s.publisher.Publish(ctx, events.NewAccountDeleted(dbTargetID, counts.Profiles, counts.Orders, false)); pubErr != nil {
		s.logger.Warn("failed to publish account deleted event", zap.Error(pubErr))
	}

	s.logger.Info("admin user deletion completed",
		zap.String("targetAccountId", dbTargetID),
		zap.Int("profiles", counts.Profiles),
		zap.Int("orders", counts.Orders),
	)
	return result, nil
}

// The per-entity deletion operations let an admin run the cascade one entity
// type at a time, in the documented order. Each is best-effort per item and
// returns the number of items removed.

// AdminDeleteUserOrders deletes every order under the account's campaigns.
func (s *AdminService) AdminDeleteUserOrders(ctx context.Context, caller access.Caller, targetAccountID string) (int, error) {
	if err := s.adminCascadeGuard(caller, targetAccountID); err != nil {
		return 0, err
	}
	return s.purge.DeleteOrders(ctx, targetAccountID, BestEffort)
}

// AdminDeleteUserCampaigns deletes every campaign under the account's profiles.
func (s *AdminService) AdminDeleteUserCampaigns(ctx context.Context, caller access.Caller, targetAccountID string) (int, error) {
	if err := s.adminCascadeGuard(caller, targetAccountID); err != nil {
		return 0, err
	}
	return s.purge.DeleteCampaigns(ctx, targetAccountID, BestEffort)
}

// AdminDeleteUserShares deletes every share on the account's profiles.
func (s *AdminService) AdminDeleteUserShares(ctx context.Context, caller access.Caller, targetAccountID string) (int, error) {
	if err := s.adminCascadeGuard(caller, targetAccountID); err != nil {
		return 0, err
	}
	return s.purge.DeleteShares(ctx, targetAccountID, BestEffort)
}

// AdminDeleteUserProfiles deletes every profile the account owns.
func (s *AdminService) AdminDeleteUserProfiles(ctx context.Context, caller access.Caller, targetAccountID string) (int, error) {
	if err := s.adminCascadeGuard(caller, targetAccountID); err != nil {
		return 0, err
	}
	return s.purge.DeleteProfiles(ctx, targetAccountID, BestEffort)
}

// AdminDeleteUserCatalogs soft-deletes every active catalog the account owns.
func (s *AdminService) AdminDeleteUserCatalogs(ctx context.Context, caller access.Caller, targetAccountID string) (int, error) {
	if err := s.adminCascadeGuard(caller, targetAccountID); err != nil {
		return 0, err
	}
	return s.purge.SoftDeleteCatalogs(ctx, targetAccountID, BestEffort)
}

func (s *AdminService) adminCascadeGuard(caller access.Caller, targetAccountID string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if targetAccountID == "" {
		return apperrors.NewValidationError("accountId is required")
	}
	return nil
}

// AdminResetUserPassword triggers the provider's password reset flow for the
// given account.
func (s *AdminService) AdminResetUserPassword(ctx context.Context, caller access.Caller, targetAccountID string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if targetAccountID == "" {
		return apperrors.NewValidationError("accountId is required")
	}

	sub := identifiers.StripAccountID(identifiers.EnsureAccountID(targetAccountID))
	user, err := s.identity.FindUserBySub(ctx, sub)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFoundError("user")
	}
	return s.identity.ResetUserPassword(ctx, user.Username)
}

// AdminGetUserProfiles lists every profile an account owns.
func (s *AdminService) AdminGetUserProfiles(ctx context.Context, caller access.Caller, targetAccountID string) ([]*entities.Profile, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.profiles.ListByOwner(ctx, identifiers.EnsureAccountID(targetAccountID))
}

// AdminGetUserCatalogs lists an account's active catalogs.
func (s *AdminService) AdminGetUserCatalogs(ctx context.Context, caller access.Caller, targetAccountID string) ([]*entities.Catalog, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.catalogs.ListActiveByOwner(ctx, identifiers.EnsureAccountID(targetAccountID))
}

func (s *AdminService) enrich(ctx context.Context, user *ports.IdentityUser) *AdminUser {
	out := &AdminUser{
		Sub:       user.Sub,
		Username:  user.Username,
		Email:     user.Email,
		Status:    user.Status,
		Enabled:   user.Enabled,
		Groups:    s.identity.ListGroupsForUser(ctx, user.Username),
		CreatedAt: user.CreatedAt,
	}
	account, err := s.accounts.Get(ctx, identifiers.EnsureAccountID(user.Sub))
	if err != nil {
		s.logger.Warn("failed to load account for directory entry",
			zap.String("sub", user.Sub), zap.Error(err))
		return out
	}
	if account != nil {
		out.Name = account.DisplayName()
		if out.Email == "" {
			out.Email = account.Email
		}
	}
	return out
}

// subjectFromQuery extracts an identity-provider subject id from a search
// query when the query is a bare UUID or a prefixed account id.
func subjectFromQuery(query string) (string, bool) {
	candidate := identifiers.StripAccountID(query)
	if _, err := uuid.Parse(candidate); err == nil {
		return candidate, true
	}
	return "", false
}
