package services

import (
	"context"
	"errors"
	"testing"

	"kernelworx-backend/application/access"
	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/entities"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type adminFixture struct {
	accounts  *mocks.MockAccountRepository
	profiles  *mocks.MockProfileRepository
	catalogs  *mocks.MockCatalogRepository
	identity  *mocks.MockIdentityProvider
	publisher *mocks.MockEventPublisher
	purge     *purgeFixture
	service   *AdminService
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		accounts:  new(mocks.MockAccountRepository),
		profiles:  new(mocks.MockProfileRepository),
		catalogs:  new(mocks.MockCatalogRepository),
		identity:  new(mocks.MockIdentityProvider),
		publisher: new(mocks.MockEventPublisher),
		purge:     newPurgeFixture(),
	}
	f.service = NewAdminService(f.accounts, f.profiles, f.catalogs, f.purge.service, f.identity, f.publisher, zap.NewNop())
	return f
}

func TestAdminOperations_RequireAdminClaim(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture()
	caller := access.Caller{AccountID: "user-1"}

	_, err := f.service.AdminListUsers(ctx, caller, 10, "")
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.service.AdminSearchUser(ctx, caller, "pat")
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.service.AdminDeleteUser(ctx, caller, "ACCOUNT#victim")
	assert.True(t, apperrors.IsForbidden(err))

	err = f.service.AdminResetUserPassword(ctx, caller, "ACCOUNT#victim")
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.service.AdminGetUserProfiles(ctx, caller, "ACCOUNT#victim")
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.service.AdminGetUserCatalogs(ctx, caller, "ACCOUNT#victim")
	assert.True(t, apperrors.IsForbidden(err))
}

func TestAdminDeleteUser_SelfDeletionRejected(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture()

	_, err := f.service.AdminDeleteUser(ctx, adminCaller(), "admin-9")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAdminDeleteUser_PurgesDataAccountAndIdentity(t *testing.T) {
	// Arrange: target owns nothing; account record and directory entry exist.
	ctx := context.Background()
	f := newAdminFixture()

	targetID := "ACCOUNT#victim"
	f.purge.profiles.On("ListByOwner", ctx, targetID).Return([]*entities.Profile{}, nil)
	f.purge.catalogs.On("ListActiveByOwnerScan", ctx, targetID).Return([]*entities.Catalog{}, nil)
	f.accounts.On("Delete", ctx, targetID).Return(nil)
	f.identity.On("FindUserBySub", ctx, "victim").Return(&ports.IdentityUser{Username: "victim", Sub: "victim"}, nil)
	f.identity.On("DeleteUser", ctx, "victim").Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	// Act
	result, err := f.service.AdminDeleteUser(ctx, adminCaller(), "victim")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.AccountDeleted)
	assert.True(t, result.IdentityDeleted)
	f.identity.AssertExpectations(t)
}

func TestAdminDeleteUser_AbsentIdentityUserNotFound(t *testing.T) {
	// No directory entry means there is no user to delete; nothing else runs.
	ctx := context.Background()
	f := newAdminFixture()

	f.identity.On("FindUserBySub", ctx, "victim").Return(nil, nil)

	_, err := f.service.AdminDeleteUser(ctx, adminCaller(), "victim")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	f.purge.profiles.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	f.accounts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminDeleteUser_MissingAccountRecordTolerated(t *testing.T) {
	// Users who never completed a login have a directory entry but no
	// account record; deletion still succeeds.
	ctx := context.Background()
	f := newAdminFixture()

	targetID := "ACCOUNT#victim"
	f.identity.On("FindUserBySub", ctx, "victim").Return(&ports.IdentityUser{Username: "victim", Sub: "victim"}, nil)
	f.identity.On("DeleteUser", ctx, "victim").Return(nil)
	f.purge.profiles.On("ListByOwner", ctx, targetID).Return([]*entities.Profile{}, nil)
	f.purge.catalogs.On("ListActiveByOwnerScan", ctx, targetID).Return([]*entities.Catalog{}, nil)
	f.accounts.On("Delete", ctx, targetID).Return(errors.New("conditional check failed"))
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := f.service.AdminDeleteUser(ctx, adminCaller(), "victim")

	require.NoError(t, err)
	assert.True(t, result.IdentityDeleted)
	assert.False(t, result.AccountDeleted)
}

func TestAdminCascadeOperations_DelegateToPurgeSteps(t *testing.T) {
	// Arrange: one profile with one campaign, one order, one share, and one
	// active catalog; each per-entity operation reports its own count.
	ctx := context.Background()
	f := newAdminFixture()

	targetID := "ACCOUNT#victim"
	profile := &entities.Profile{OwnerAccountID: targetID, ProfileID: "PROFILE#p1"}
	campaign := &entities.Campaign{ProfileID: "PROFILE#p1", CampaignID: "CAMPAIGN#c1"}
	order := &entities.Order{CampaignID: "CAMPAIGN#c1", OrderID: "ORDER#o1"}
	share := &entities.Share{ProfileID: "PROFILE#p1", TargetAccountID: "ACCOUNT#friend"}
	catalog := &entities.Catalog{CatalogID: "CATALOG#k1", OwnerAccountID: targetID}

	f.purge.profiles.On("ListByOwner", ctx, targetID).Return([]*entities.Profile{profile}, nil)
	f.purge.campaigns.On("ListByProfile", ctx, "PROFILE#p1").Return([]*entities.Campaign{campaign}, nil)
	f.purge.orders.On("ListByCampaign", ctx, "CAMPAIGN#c1").Return([]*entities.Order{order}, nil)
	f.purge.orders.On("Delete", ctx, "CAMPAIGN#c1", "ORDER#o1").Return(nil)
	f.purge.campaigns.On("Delete", ctx, "PROFILE#p1", "CAMPAIGN#c1").Return(nil)
	f.purge.shares.On("ListByProfile", ctx, "PROFILE#p1").Return([]*entities.Share{share}, nil)
	f.purge.shares.On("Delete", ctx, "PROFILE#p1", "ACCOUNT#friend").Return(nil)
	f.purge.profiles.On("Delete", ctx, targetID, "PROFILE#p1").Return(nil)
	f.purge.catalogs.On("ListActiveByOwnerScan", ctx, targetID).Return([]*entities.Catalog{catalog}, nil)
	f.purge.catalogs.On("MarkDeleted", ctx, "CATALOG#k1").Return(nil)

	// Act / Assert
	orders, err := f.service.AdminDeleteUserOrders(ctx, adminCaller(), "victim")
	require.NoError(t, err)
	assert.Equal(t, 1, orders)

	campaigns, err := f.service.AdminDeleteUserCampaigns(ctx, adminCaller(), "victim")
	require.NoError(t, err)
	assert.Equal(t, 1, campaigns)

	shares, err := f.service.AdminDeleteUserShares(ctx, adminCaller(), "victim")
	require.NoError(t, err)
	assert.Equal(t, 1, shares)

	profiles, err := f.service.AdminDeleteUserProfiles(ctx, adminCaller(), "victim")
	require.NoError(t, err)
	assert.Equal(t, 1, profiles)

	catalogs, err := f.service.AdminDeleteUserCatalogs(ctx, adminCaller(), "victim")
	require.NoError(t, err)
	assert.Equal(t, 1, catalogs)
}

func TestAdminCascadeOperations_RequireAdminClaim(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture()
	caller := access.Caller{AccountID: "user-1"}

	_, err := f.service.AdminDeleteUserOrders(ctx, caller, "victim")
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.service.AdminDeleteUserCatalogs(ctx, caller, "victim")
	assert.True(t, apperrors.IsForbidden(err))
}

func TestAdminSearchUser_UUIDQueryResolvesBySub(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newAdminFixture()

	sub := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	user := &ports.IdentityUser{Username: sub, Sub: sub, Email: "pat@example.com"}
	f.identity.On("FindUserBySub", ctx, sub).Return(user, nil)
	f.identity.On("ListGroupsForUser", ctx, sub).Return([]string{"USERS"})
	f.accounts.On("Get", ctx, "ACCOUNT#"+sub).Return(&entities.Account{AccountID: "ACCOUNT#" + sub, GivenName: "Pat"}, nil)

	// Act: prefixed account ids resolve the same way.
	results, err := f.service.AdminSearchUser(ctx, adminCaller(), "ACCOUNT#"+sub)

	// Assert
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sub, results[0].Sub)
	assert.Equal(t, "Pat", results[0].Name)
	assert.Equal(t, []string{"USERS"}, results[0].Groups)
}

func TestAdminSearchUser_UnknownSubYieldsEmptyResult(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture()

	sub := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	f.identity.On("FindUserBySub", ctx, sub).Return(nil, nil)

	results, err := f.service.AdminSearchUser(ctx, adminCaller(), sub)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdminSearchUser_EmailFallsBackToPrefixSearch(t *testing.T) {
	// Arrange: exact email misses, prefix search hits.
	ctx := context.Background()
	f := newAdminFixture()

	user := &ports.IdentityUser{Username: "u1", Sub: "sub-1", Email: "pat@example.com"}
	f.identity.On("FindUserByEmail", ctx, "pat@exam").Return(nil, nil)
	f.identity.On("SearchUsersByEmailPrefix", ctx, "pat@exam", defaultSearchLimit).Return([]*ports.IdentityUser{user}, nil)
	f.identity.On("ListGroupsForUser", ctx, "u1").Return(nil)
	f.accounts.On("Get", ctx, "ACCOUNT#sub-1").Return(nil, nil)

	// Act
	results, err := f.service.AdminSearchUser(ctx, adminCaller(), "pat@exam")

	// Assert
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "pat@example.com", results[0].Email)
}

func TestAdminSearchUser_FreeTextScansAccounts(t *testing.T) {
	// Arrange: fuzzy account match resolved back to the directory.
	ctx := context.Background()
	f := newAdminFixture()

	account := &entities.Account{AccountID: "ACCOUNT#sub-1", Email: "pat@example.com", GivenName: "Pat"}
	user := &ports.IdentityUser{Username: "u1", Sub: "sub-1", Email: "pat@example.com"}
	f.accounts.On("SearchByText", ctx, "pat", defaultSearchLimit).Return([]*entities.Account{account}, nil)
	f.identity.On("FindUserBySub", ctx, "sub-1").Return(user, nil)
	f.identity.On("ListGroupsForUser", ctx, "u1").Return(nil)
	f.accounts.On("Get", ctx, "ACCOUNT#sub-1").Return(account, nil)

	// Act
	results, err := f.service.AdminSearchUser(ctx, adminCaller(), "pat")

	// Assert
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Pat", results[0].Name)
}

func TestAdminSearchUser_BlankQueryRejected(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture()

	_, err := f.service.AdminSearchUser(ctx, adminCaller(), "   ")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAdminListUsers_EnrichesDirectoryEntries(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newAdminFixture()

	users := []*ports.IdentityUser{
		{Username: "u1", Sub: "sub-1", Email: "a@example.com"},
		{Username: "u2", Sub: "sub-2", Email: "b@example.com"},
	}
	f.identity.On("ListUsers", ctx, 2, "").Return(users, "token-1", nil)
	f.identity.On("ListGroupsForUser", ctx, "u1").Return([]string{"ADMIN"})
	f.identity.On("ListGroupsForUser", ctx, "u2").Return(nil)
	f.accounts.On("Get", ctx, "ACCOUNT#sub-1").Return(&entities.Account{AccountID: "ACCOUNT#sub-1", GivenName: "Ada"}, nil)
	f.accounts.On("Get", ctx, "ACCOUNT#sub-2").Return(nil, nil)

	// Act
	page, err := f.service.AdminListUsers(ctx, adminCaller(), 2, "")

	// Assert: entries without an account record still appear.
	require.NoError(t, err)
	assert.Equal(t, "token-1", page.NextToken)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "Ada", page.Users[0].Name)
	assert.Equal(t, []string{"ADMIN"}, page.Users[0].Groups)
	assert.Empty(t, page.Users[1].Name)
}

func TestAdminResetUserPassword_MissingUserNotFound(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture()

	f.identity.On("FindUserBySub", ctx, "ghost").Return(nil, nil)

	err := f.service.AdminResetUserPassword(ctx, adminCaller(), "ghost")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
