package services

import (
	"context"
	"testing"

	"kernelworx-backend/application/access"
	"kernelworx-backend/domain/entities"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const shareTargetID = "ACCOUNT#friend"

type shareFixture struct {
	shares   *mocks.MockShareRepository
	profiles *mocks.MockProfileRepository
	accounts *mocks.MockAccountRepository
	service  *ShareService
}

func newShareFixture() *shareFixture {
	f := &shareFixture{
		shares:   new(mocks.MockShareRepository),
		profiles: new(mocks.MockProfileRepository),
		accounts: new(mocks.MockAccountRepository),
	}
	checker := access.NewChecker(f.profiles, f.shares, zap.NewNop())
	f.service = NewShareService(f.shares, f.accounts, checker, zap.NewNop())
	return f
}

func (f *shareFixture) expectProfile() {
	profile := &entities.Profile{OwnerAccountID: testOwnerID, ProfileID: transferProfileID}
	f.profiles.On("FindByID", mock.Anything, transferProfileID).Return(profile, nil)
}

func TestCreateShare_OwnerGrantsReadWrite(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	f.accounts.On("Get", ctx, shareTargetID).Return(&entities.Account{AccountID: shareTargetID}, nil)
	f.shares.On("PutIfAbsent", ctx, mock.MatchedBy(func(s *entities.Share) bool {
		return s.ProfileID == transferProfileID &&
			s.TargetAccountID == shareTargetID &&
			s.OwnerAccountID == testOwnerID
	})).Return(nil)

	// Act
	share, err := f.service.CreateShare(ctx, ownerCaller(), transferProfileID, shareTargetID, []string{"WRITE", "READ"})

	// Assert: permissions come back normalized, READ first.
	require.NoError(t, err)
	assert.Equal(t, []string{"READ", "WRITE"}, share.Permissions)
	f.shares.AssertExpectations(t)
}

func TestCreateShare_NonOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	_, err := f.service.CreateShare(ctx, access.Caller{AccountID: "stranger"}, transferProfileID, shareTargetID, []string{"READ"})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	f.shares.AssertNotCalled(t, "PutIfAbsent", mock.Anything, mock.Anything)
}

func TestCreateShare_SharingWithOwnerRejected(t *testing.T) {
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	_, err := f.service.CreateShare(ctx, ownerCaller(), transferProfileID, "owner-1", []string{"READ"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateShare_NoValidPermissionsRejected(t *testing.T) {
	ctx := context.Background()
	f := newShareFixture()

	_, err := f.service.CreateShare(ctx, ownerCaller(), transferProfileID, shareTargetID, []string{"DELETE", ""})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	f.profiles.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateShare_MissingTargetAccountNotFound(t *testing.T) {
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	f.accounts.On("Get", ctx, shareTargetID).Return(nil, nil)

	_, err := f.service.CreateShare(ctx, ownerCaller(), transferProfileID, shareTargetID, []string{"READ"})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateShare_DuplicateGrantConflicts(t *testing.T) {
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	f.accounts.On("Get", ctx, shareTargetID).Return(&entities.Account{AccountID: shareTargetID}, nil)
	f.shares.On("PutIfAbsent", ctx, mock.Anything).Return(apperrors.NewConflictError("a share already exists for this profile and account"))

	_, err := f.service.CreateShare(ctx, ownerCaller(), transferProfileID, shareTargetID, []string{"READ"})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestListShares_AdminBypassesOwnership(t *testing.T) {
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	f.shares.On("ListByProfile", ctx, transferProfileID).Return([]*entities.Share{}, nil)

	shares, err := f.service.ListShares(ctx, adminCaller(), transferProfileID)

	require.NoError(t, err)
	assert.Empty(t, shares)
}

func TestListShares_NonOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	_, err := f.service.ListShares(ctx, access.Caller{AccountID: "stranger"}, transferProfileID)

	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestRevokeShare_TargetMayDropTheirOwnGrant(t *testing.T) {
	// Arrange: the share's target revokes it, not the owner.
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	f.shares.On("Delete", ctx, transferProfileID, shareTargetID).Return(nil)

	// Act
	err := f.service.RevokeShare(ctx, access.Caller{AccountID: "friend"}, transferProfileID, shareTargetID)

	// Assert
	require.NoError(t, err)
	f.shares.AssertExpectations(t)
}

func TestRevokeShare_ThirdPartyForbidden(t *testing.T) {
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	err := f.service.RevokeShare(ctx, access.Caller{AccountID: "stranger"}, transferProfileID, shareTargetID)

	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	f.shares.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestRevokeShare_AbsentShareIsNoOp(t *testing.T) {
	// Deletes are idempotent at the repository level, so revoking a grant
	// that never existed succeeds.
	ctx := context.Background()
	f := newShareFixture()
	f.expectProfile()

	f.shares.On("Delete", ctx, transferProfileID, shareTargetID).Return(nil)

	err := f.service.RevokeShare(ctx, ownerCaller(), transferProfileID, shareTargetID)

	require.NoError(t, err)
}
