package services

import (
	"context"
	"errors"
	"testing"

	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/entities"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type accountFixture struct {
	accounts  *mocks.MockAccountRepository
	identity  *mocks.MockIdentityProvider
	publisher *mocks.MockEventPublisher
	purge     *purgeFixture
	service   *AccountService
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		accounts:  new(mocks.MockAccountRepository),
		identity:  new(mocks.MockIdentityProvider),
		publisher: new(mocks.MockEventPublisher),
		purge:     newPurgeFixture(),
	}
	f.service = NewAccountService(f.accounts, f.purge.service, f.identity, f.publisher, zap.NewNop())
	return f
}

// expectEmptyPurge stubs a purge over an account that owns nothing.
func (f *accountFixture) expectEmptyPurge(ctx context.Context) {
	f.purge.profiles.On("ListByOwner", ctx, testOwnerID).Return([]*entities.Profile{}, nil)
	f.purge.catalogs.On("ListActiveByOwnerScan", ctx, testOwnerID).Return([]*entities.Catalog{}, nil)
}

func TestDeleteMyAccount_HappyPath(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newAccountFixture()
	f.expectEmptyPurge(ctx)

	user := &ports.IdentityUser{Username: "owner-1", Sub: "owner-1"}
	f.accounts.On("Delete", ctx, testOwnerID).Return(nil)
	f.identity.On("FindUserBySub", ctx, "owner-1").Return(user, nil)
	f.identity.On("DeleteUser", ctx, "owner-1").Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	// Act
	result, err := f.service.DeleteMyAccount(ctx, "owner-1")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.IdentityDeleted)
	f.accounts.AssertExpectations(t)
	f.identity.AssertExpectations(t)
}

func TestDeleteMyAccount_SecondCallStillSucceeds(t *testing.T) {
	// A retry finds no account record and no identity user and still reports
	// success.
	ctx := context.Background()
	f := newAccountFixture()
	f.expectEmptyPurge(ctx)

	f.accounts.On("Delete", ctx, testOwnerID).Return(nil)
	f.identity.On("FindUserBySub", ctx, "owner-1").Return(nil, nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := f.service.DeleteMyAccount(ctx, "owner-1")

	require.NoError(t, err)
	assert.False(t, result.IdentityDeleted)
	f.identity.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestDeleteMyAccount_ProviderAlreadyDeletedUserIsSuccess(t *testing.T) {
	// The directory entry can disappear out-of-band between lookup and
	// delete; the provider's "not found" counts as done.
	ctx := context.Background()
	f := newAccountFixture()
	f.expectEmptyPurge(ctx)

	user := &ports.IdentityUser{Username: "owner-1", Sub: "owner-1"}
	f.accounts.On("Delete", ctx, testOwnerID).Return(nil)
	f.identity.On("FindUserBySub", ctx, "owner-1").Return(user, nil)
	f.identity.On("DeleteUser", ctx, "owner-1").Return(apperrors.NewNotFoundError("user"))
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := f.service.DeleteMyAccount(ctx, "owner-1")

	require.NoError(t, err)
	assert.False(t, result.IdentityDeleted)
}

func TestDeleteMyAccount_ProviderErrorFailsWholeOperation(t *testing.T) {
	// A non-"not found" provider failure surfaces even though the store-side
	// cleanup already completed. Accepted inconsistency: the retry purges
	// nothing and goes straight to the provider.
	ctx := context.Background()
	f := newAccountFixture()
	f.expectEmptyPurge(ctx)

	user := &ports.IdentityUser{Username: "owner-1", Sub: "owner-1"}
	f.accounts.On("Delete", ctx, testOwnerID).Return(nil)
	f.identity.On("FindUserBySub", ctx, "owner-1").Return(user, nil)
	f.identity.On("DeleteUser", ctx, "owner-1").Return(apperrors.NewExternalError("cognito", errors.New("throttled")))

	result, err := f.service.DeleteMyAccount(ctx, "owner-1")

	require.Error(t, err)
	assert.Nil(t, result)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDeleteMyAccount_StoreFailureAbortsBeforeProvider(t *testing.T) {
	// A strict purge failure must leave the identity untouched so the user
	// can log in and retry.
	ctx := context.Background()
	f := newAccountFixture()

	f.purge.profiles.On("ListByOwner", ctx, testOwnerID).Return(nil, apperrors.NewDatabaseError("query", errors.New("boom")))

	result, err := f.service.DeleteMyAccount(ctx, "owner-1")

	require.Error(t, err)
	assert.Nil(t, result)
	f.accounts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.identity.AssertNotCalled(t, "FindUserBySub", mock.Anything, mock.Anything)
	f.identity.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestEnsureAccount_CreatesFromClaimsOnFirstLogin(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newAccountFixture()

	claims := map[string]interface{}{
		"email":       "owner@example.com",
		"given_name":  "Pat",
		"family_name": "Li",
	}
	f.accounts.On("Get", ctx, testOwnerID).Return(nil, nil)
	f.accounts.On("Put", ctx, mock.MatchedBy(func(a *entities.Account) bool {
		return a.AccountID == testOwnerID && a.Email == "owner@example.com" && a.GivenName == "Pat"
	})).Return(nil)

	// Act
	account, err := f.service.EnsureAccount(ctx, "owner-1", claims)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", account.Email)
	f.accounts.AssertExpectations(t)
}

func TestEnsureAccount_ReturnsExistingWithoutWriting(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	existing := &entities.Account{AccountID: testOwnerID, Email: "owner@example.com"}
	f.accounts.On("Get", ctx, testOwnerID).Return(existing, nil)

	account, err := f.service.EnsureAccount(ctx, "owner-1", nil)

	require.NoError(t, err)
	assert.Same(t, existing, account)
	f.accounts.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestUpdateMyAccount_EmptyUpdateRejected(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	_, err := f.service.UpdateMyAccount(ctx, "owner-1", entities.AccountUpdate{})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetMyAccount_MissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	f.accounts.On("Get", ctx, testOwnerID).Return(nil, nil)

	_, err := f.service.GetMyAccount(ctx, "owner-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
