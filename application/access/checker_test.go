package access

import (
	"context"
	"testing"

	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/permissions"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	ownerID  = "ACCOUNT#owner-1"
	otherID  = "ACCOUNT#other-2"
	profID   = "PROFILE#prof-1"
	sellerNm = "Troop 42"
)

func newTestChecker() (*Checker, *mocks.MockProfileRepository, *mocks.MockShareRepository) {
	profiles := new(mocks.MockProfileRepository)
	shares := new(mocks.MockShareRepository)
	return NewChecker(profiles, shares, zap.NewNop()), profiles, shares
}

func TestCheckProfileAccess_OwnerAlwaysAllowed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	checker, profiles, _ := newTestChecker()

	profile := &entities.Profile{OwnerAccountID: ownerID, ProfileID: profID, SellerName: sellerNm}
	profiles.On("GetOwned", ctx, ownerID, profID).Return(profile, nil)

	// Act
	okRead, err := checker.CheckProfileAccess(ctx, ownerID, profID, permissions.Read)
	require.NoError(t, err)
	okWrite, err := checker.CheckProfileAccess(ctx, ownerID, profID, permissions.Write)
	require.NoError(t, err)

	// Assert
	assert.True(t, okRead)
	assert.True(t, okWrite)
	profiles.AssertExpectations(t)
}

func TestCheckProfileAccess_ReadShareDoesNotGrantWrite(t *testing.T) {
	// Arrange
	ctx := context.Background()
	checker, profiles, shares := newTestChecker()

	profile := &entities.Profile{OwnerAccountID: ownerID, ProfileID: profID}
	share := &entities.Share{ProfileID: profID, TargetAccountID: otherID, Permissions: []string{"READ"}}

	profiles.On("GetOwned", ctx, otherID, profID).Return(nil, nil)
	profiles.On("FindByID", ctx, profID).Return(profile, nil)
	shares.On("Get", ctx, profID, otherID).Return(share, nil)

	// Act
	okWrite, err := checker.CheckProfileAccess(ctx, otherID, profID, permissions.Write)
	require.NoError(t, err)
	okRead, err := checker.CheckProfileAccess(ctx, otherID, profID, permissions.Read)
	require.NoError(t, err)

	// Assert
	assert.False(t, okWrite)
	assert.True(t, okRead)
}

func TestCheckProfileAccess_WriteShareImpliesRead(t *testing.T) {
	// Arrange
	ctx := context.Background()
	checker, profiles, shares := newTestChecker()

	profile := &entities.Profile{OwnerAccountID: ownerID, ProfileID: profID}
	share := &entities.Share{ProfileID: profID, TargetAccountID: otherID, Permissions: []string{"WRITE"}}

	profiles.On("GetOwned", ctx, otherID, profID).Return(nil, nil)
	profiles.On("FindByID", ctx, profID).Return(profile, nil)
	shares.On("Get", ctx, profID, otherID).Return(share, nil)

	// Act
	okRead, err := checker.CheckProfileAccess(ctx, otherID, profID, permissions.Read)

	// Assert
	require.NoError(t, err)
	assert.True(t, okRead)
}

func TestCheckProfileAccess_NoShareDenied(t *testing.T) {
	// Arrange
	ctx := context.Background()
	checker, profiles, shares := newTestChecker()

	profile := &entities.Profile{OwnerAccountID: ownerID, ProfileID: profID}
	profiles.On("GetOwned", ctx, otherID, profID).Return(nil, nil)
	profiles.On("FindByID", ctx, profID).Return(profile, nil)
	shares.On("Get", ctx, profID, otherID).Return(nil, nil)

	// Act
	ok, err := checker.CheckProfileAccess(ctx, otherID, profID, permissions.Read)

	// Assert
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckProfileAccess_MissingProfileIsNotFoundNotDenied(t *testing.T) {
	// Arrange
	ctx := context.Background()
	checker, profiles, _ := newTestChecker()

	profiles.On("GetOwned", ctx, otherID, "PROFILE#ghost").Return(nil, nil)
	profiles.On("FindByID", ctx, "PROFILE#ghost").Return(nil, nil)

	// Act
	ok, err := checker.CheckProfileAccess(ctx, otherID, "PROFILE#ghost", permissions.Read)

	// Assert
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCheckProfileAccess_NormalizesBareIDs(t *testing.T) {
	// Arrange: caller and profile ids arrive without their prefixes.
	ctx := context.Background()
	checker, profiles, _ := newTestChecker()

	profile := &entities.Profile{OwnerAccountID: ownerID, ProfileID: profID}
	profiles.On("GetOwned", ctx, ownerID, profID).Return(profile, nil)

	// Act
	ok, err := checker.CheckProfileAccess(ctx, "owner-1", "prof-1", permissions.Write)

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	profiles.AssertExpectations(t)
}

func TestRequireProfileAccess_DeniedIsForbidden(t *testing.T) {
	// Arrange
	ctx := context.Background()
	checker, profiles, shares := newTestChecker()

	profile := &entities.Profile{OwnerAccountID: ownerID, ProfileID: profID}
	profiles.On("GetOwned", ctx, otherID, profID).Return(nil, nil)
	profiles.On("FindByID", ctx, profID).Return(profile, nil)
	shares.On("Get", ctx, profID, otherID).Return(nil, nil)

	// Act
	err := checker.RequireProfileAccess(ctx, otherID, profID, permissions.Write)

	// Assert
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestIsProfileOwner(t *testing.T) {
	// Arrange
	ctx := context.Background()
	checker, profiles, _ := newTestChecker()

	profile := &entities.Profile{OwnerAccountID: ownerID, ProfileID: profID}
	profiles.On("FindByID", ctx, profID).Return(profile, nil)

	// Act
	isOwner, err := checker.IsProfileOwner(ctx, "owner-1", profID)
	require.NoError(t, err)
	isOther, err := checker.IsProfileOwner(ctx, otherID, profID)
	require.NoError(t, err)

	// Assert
	assert.True(t, isOwner)
	assert.False(t, isOther)
}
