// Package ports defines the narrow contracts the application layer consumes.
// Repositories wrap the document store; lookups return (nil, nil) when the
// item is absent so callers can distinguish "missing" from "store failure",
// and deletes are no-ops on already-absent keys.
package ports

import (
	"context"

	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/events"
)

// AccountRepository persists Account records keyed by accountId.
type AccountRepository interface {
	Get(ctx context.Context, accountID string) (*entities.Account, error)

	// Put creates or replaces an account record.
	Put(ctx context.Context, account *entities.Account) error

	// Update applies the provided fields in place. Fails with NotFound when
	// the account record does not exist.
	Update(ctx context.Context, accountID string, update entities.AccountUpdate) (*entities.Account, error)

	Delete(ctx context.Context, accountID string) error

	// SearchByText scans for accounts whose email or name contains the query,
	// case-insensitively, up to limit matches.
	SearchByText(ctx context.Context, query string, limit int) ([]*entities.Account, error)
}

// ProfileRepository persists Profile records keyed by (ownerAccountId, profileId)
// with a profileId GSI for id-only lookups.
type ProfileRepository interface {
	// GetOwned is the strongly consistent owner lookup.
	GetOwned(ctx context.Context, ownerAccountID, profileID string) (*entities.Profile, error)

	// FindByID resolves a profile through the id-only index.
	FindByID(ctx context.Context, profileID string) (*entities.Profile, error)

	// ListByOwner enumerates every profile an account owns, following
	// continuation tokens until exhausted.
	ListByOwner(ctx context.Context, ownerAccountID string) ([]*entities.Profile, error)

	Put(ctx context.Context, profile *entities.Profile) error
	Delete(ctx context.Context, ownerAccountID, profileID string) error
}

// ShareRepository persists Share records keyed by (profileId, targetAccountId).
type ShareRepository interface {
	Get(ctx context.Context, profileID, targetAccountID string) (*entities.Share, error)
	ListByProfile(ctx context.Context, profileID string) ([]*entities.Share, error)

	// PutIfAbsent creates the share, failing with Conflict when one already
	// exists for the same (profile, target) pair.
	PutIfAbsent(ctx context.Context, share *entities.Share) error

	Delete(ctx context.Context, profileID, targetAccountID string) error
}

// CampaignRepository persists Campaign records keyed by (profileId, campaignId).
type CampaignRepository interface {
	ListByProfile(ctx context.Context, profileID string) ([]*entities.Campaign, error)
	Put(ctx context.Context, campaign *entities.Campaign) error
	Delete(ctx context.Context, profileID, campaignID string) error
}

// OrderRepository persists Order records keyed by (campaignId, orderId).
type OrderRepository interface {
	ListByCampaign(ctx context.Context, campaignID string) ([]*entities.Order, error)
	Put(ctx context.Context, order *entities.Order) error
	Delete(ctx context.Context, campaignID, orderID string) error
}

// CatalogRepository persists Catalog records keyed by catalogId.
type CatalogRepository interface {
	Get(ctx context.Context, catalogID string) (*entities.Catalog, error)
	Put(ctx context.Context, catalog *entities.Catalog) error

	// ListActiveByOwnerScan finds the owner's not-yet-deleted catalogs via a
	// paginated filtered scan (catalogs have no owner GSI keyed for this).
	ListActiveByOwnerScan(ctx context.Context, ownerAccountID string) ([]*entities.Catalog, error)

	// ListActiveByOwner serves the admin read path through the owner index.
	ListActiveByOwner(ctx context.Context, ownerAccountID string) ([]*entities.Catalog, error)

	// MarkDeleted sets the soft-delete flag, retaining the record.
	MarkDeleted(ctx context.Context, catalogID string) error
}

// InviteRepository persists Invite records keyed by inviteCode.
type InviteRepository interface {
	Get(ctx context.Context, inviteCode string) (*entities.Invite, error)

	// PutIfAbsent creates the invite, failing with Conflict on a code collision.
	PutIfAbsent(ctx context.Context, invite *entities.Invite) error

	// MarkUsed consumes the invite. Fails with NotFound when the code is gone.
	MarkUsed(ctx context.Context, inviteCode, usedByAccountID string) error

	Delete(ctx context.Context, inviteCode string) error
}

// IdentityUser is the provider-side user record the application layer sees.
type IdentityUser struct {
	Username       string
	Sub            string
	Email          string
	EmailVerified  bool
	Status         string
	Enabled        bool
	CreatedAt      string
	LastModifiedAt string
}

// IdentityProvider wraps the external user directory (Cognito in production).
type IdentityProvider interface {
	// FindUserBySub resolves a user by subject id; (nil, nil) when absent.
	FindUserBySub(ctx context.Context, sub string) (*IdentityUser, error)

	// FindUserByEmail resolves a user by exact email; (nil, nil) when absent.
	FindUserByEmail(ctx context.Context, email string) (*IdentityUser, error)

	// SearchUsersByEmailPrefix finds users whose email starts with prefix.
	SearchUsersByEmailPrefix(ctx context.Context, prefix string, limit int) ([]*IdentityUser, error)

	// ListUsers pages through the pool; nextToken is empty on the last page.
	ListUsers(ctx context.Context, limit int, nextToken string) ([]*IdentityUser, string, error)

	// DeleteUser removes the user. A provider-side "user not found" surfaces
	// as a NotFound AppError so callers can treat it as already-deleted.
	DeleteUser(ctx context.Context, username string) error

	// ListGroupsForUser returns the user's group names. Provider failures are
	// swallowed and reported as no groups; they never abort the caller.
	ListGroupsForUser(ctx context.Context, username string) []string

	// ResetUserPassword initiates a password reset email.
	ResetUserPassword(ctx context.Context, username string) error
}

// EventPublisher sends domain events to the event bus, best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

// MetricsPublisher records operational counters, best-effort.
type MetricsPublisher interface {
	RecordCount(ctx context.Context, metricName string, value int, dimensions map[string]string)
}
