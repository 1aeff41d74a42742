package appsync

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"kernelworx-backend/application/services"
	"kernelworx-backend/domain/entities"
	"kernelworx-backend/infrastructure/di"
	apperrors "kernelworx-backend/pkg/errors"
	"kernelworx-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type resolverFixture struct {
	accounts *mocks.MockAccountRepository
	resolver *Resolver
}

func newResolverFixture() *resolverFixture {
	logger := zap.NewNop()
	f := &resolverFixture{accounts: new(mocks.MockAccountRepository)}

	purge := services.NewPurgeService(
		new(mocks.MockProfileRepository),
		new(mocks.MockCampaignRepository),
		new(mocks.MockOrderRepository),
		new(mocks.MockShareRepository),
		new(mocks.MockCatalogRepository),
		nil,
		logger,
	)
	accountService := services.NewAccountService(
		f.accounts,
		purge,
		new(mocks.MockIdentityProvider),
		new(mocks.MockEventPublisher),
		logger,
	)

	container := &di.Container{
		Logger:         logger,
		AccountService: accountService,
	}
	f.resolver = NewResolver(container)
	return f
}

func authedEvent(fieldName string, args string) Event {
	event := Event{
		Info:     Info{FieldName: fieldName},
		Identity: &Identity{Sub: "caller-1"},
	}
	if args != "" {
		event.Arguments = json.RawMessage(args)
	}
	return event
}

func TestHandle_NoIdentityIsUnauthorized(t *testing.T) {
	f := newResolverFixture()

	_, err := f.resolver.Handle(context.Background(), Event{Info: Info{FieldName: "getMyAccount"}})

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "UNAUTHORIZED:"))
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	f := newResolverFixture()

	_, err := f.resolver.Handle(context.Background(), authedEvent("bogusField", ""))

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "INVALID_INPUT:"))
}

func TestHandle_GetMyAccountReturnsAccount(t *testing.T) {
	// Arrange
	f := newResolverFixture()
	account := &entities.Account{AccountID: "ACCOUNT#caller-1", Email: "caller@example.com"}
	f.accounts.On("Get", context.Background(), "ACCOUNT#caller-1").Return(account, nil)

	// Act
	result, err := f.resolver.Handle(context.Background(), authedEvent("getMyAccount", ""))

	// Assert
	require.NoError(t, err)
	assert.Same(t, account, result)
}

func TestHandle_CollaboratorFailuresLeaveAsInternal(t *testing.T) {
	// Store errors must not leak their type or cause to the caller.
	f := newResolverFixture()
	cause := apperrors.NewDatabaseError("get", assert.AnError)
	f.accounts.On("Get", context.Background(), "ACCOUNT#caller-1").Return(nil, cause)

	_, err := f.resolver.Handle(context.Background(), authedEvent("getMyAccount", ""))

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "INTERNAL_ERROR:"))
	assert.NotContains(t, err.Error(), assert.AnError.Error())
}

func TestHandle_MalformedArgumentsRejected(t *testing.T) {
	f := newResolverFixture()

	_, err := f.resolver.Handle(context.Background(), authedEvent("updateMyAccount", `{"givenName": 7}`))

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "INVALID_INPUT:"))
}

func TestCallerFromEvent_FoldsGroupsIntoClaims(t *testing.T) {
	// Some auth modes deliver groups beside the claims rather than in them.
	event := Event{
		Info:     Info{FieldName: "adminListUsers"},
		Identity: &Identity{Sub: "admin-1", Groups: []string{"ADMIN"}},
	}

	caller, err := callerFromEvent(event)

	require.NoError(t, err)
	assert.True(t, caller.IsAdmin())
}

func TestCallerFromEvent_ClaimGroupsTakePrecedence(t *testing.T) {
	event := Event{
		Info: Info{FieldName: "getMyAccount"},
		Identity: &Identity{
			Sub:    "user-1",
			Claims: map[string]interface{}{"cognito:groups": "USERS"},
			Groups: []string{"ADMIN"},
		},
	}

	caller, err := callerFromEvent(event)

	require.NoError(t, err)
	assert.False(t, caller.IsAdmin())
}
