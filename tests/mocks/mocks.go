// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/entities"
	"kernelworx-backend/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository mocks ports.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Get(ctx context.Context, accountID string) (*entities.Account, error) {
	args := m.Called(ctx, accountID)
	if v := args.Get(0); v != nil {
		return v.(*entities.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) Put(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, accountID string, update entities.AccountUpdate) (*entities.Account, error) {
	args := m.Called(ctx, accountID, update)
	if v := args.Get(0); v != nil {
		return v.(*entities.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) SearchByText(ctx context.Context, query string, limit int) ([]*entities.Account, error) {
	args := m.Called(ctx, query, limit)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockProfileRepository mocks ports.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetOwned(ctx context.Context, ownerAccountID, profileID string) (*entities.Profile, error) {
	args := m.Called(ctx, ownerAccountID, profileID)
	if v := args.Get(0); v != nil {
		return v.(*entities.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, profileID string) (*entities.Profile, error) {
	args := m.Called(ctx, profileID)
	if v := args.Get(0); v != nil {
		return v.(*entities.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) ListByOwner(ctx context.Context, ownerAccountID string) ([]*entities.Profile, error) {
	args := m.Called(ctx, ownerAccountID)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) Put(ctx context.Context, profile *entities.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, ownerAccountID, profileID string) error {
	args := m.Called(ctx, ownerAccountID, profileID)
	return args.Error(0)
}

// MockShareRepository mocks ports.ShareRepository
type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Get(ctx context.Context, profileID, targetAccountID string) (*entities.Share, error) {
	args := m.Called(ctx, profileID, targetAccountID)
	if v := args.Get(0); v != nil {
		return v.(*entities.Share), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShareRepository) ListByProfile(ctx context.Context, profileID string) ([]*entities.Share, error) {
	args := m.Called(ctx, profileID)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Share), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShareRepository) PutIfAbsent(ctx context.Context, share *entities.Share) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareRepository) Delete(ctx context.Context, profileID, targetAccountID string) error {
	args := m.Called(ctx, profileID, targetAccountID)
	return args.Error(0)
}

// MockCampaignRepository mocks ports.CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) ListByProfile(ctx context.Context, profileID string) ([]*entities.Campaign, error) {
	args := m.Called(ctx, profileID)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Campaign), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCampaignRepository) Put(ctx context.Context, campaign *entities.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, profileID, campaignID string) error {
	args := m.Called(ctx, profileID, campaignID)
	return args.Error(0)
}

// MockOrderRepository mocks ports.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*entities.Order, error) {
	args := m.Called(ctx, campaignID)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Put(ctx context.Context, order *entities.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, campaignID, orderID string) error {
	args := m.Called(ctx, campaignID, orderID)
	return args.Error(0)
}

// MockCatalogRepository mocks ports.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Get(ctx context.Context, catalogID string) (*entities.Catalog, error) {
	args := m.Called(ctx, catalogID)
	if v := args.Get(0); v != nil {
		return v.(*entities.Catalog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) Put(ctx context.Context, catalog *entities.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListActiveByOwnerScan(ctx context.Context, ownerAccountID string) ([]*entities.Catalog, error) {
	args := m.Called(ctx, ownerAccountID)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Catalog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) ListActiveByOwner(ctx context.Context, ownerAccountID string) ([]*entities.Catalog, error) {
	args := m.Called(ctx, ownerAccountID)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Catalog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) MarkDeleted(ctx context.Context, catalogID string) error {
	args := m.Called(ctx, catalogID)
	return args.Error(0)
}

// MockInviteRepository mocks ports.InviteRepository
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) Get(ctx context.Context, inviteCode string) (*entities.Invite, error) {
	args := m.Called(ctx, inviteCode)
	if v := args.Get(0); v != nil {
		return v.(*entities.Invite), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInviteRepository) PutIfAbsent(ctx context.Context, invite *entities.Invite) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

func (m *MockInviteRepository) MarkUsed(ctx context.Context, inviteCode, usedByAccountID string) error {
	args := m.Called(ctx, inviteCode, usedByAccountID)
	return args.Error(0)
}

func (m *MockInviteRepository) Delete(ctx context.Context, inviteCode string) error {
	args := m.Called(ctx, inviteCode)
	return args.Error(0)
}

// MockIdentityProvider mocks ports.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) FindUserBySub(ctx context.Context, sub string) (*ports.IdentityUser, error) {
	args := m.Called(ctx, sub)
	if v := args.Get(0); v != nil {
		return v.(*ports.IdentityUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) FindUserByEmail(ctx context.Context, email string) (*ports.IdentityUser, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*ports.IdentityUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) SearchUsersByEmailPrefix(ctx context.Context, prefix string, limit int) ([]*ports.IdentityUser, error) {
	args := m.Called(ctx, prefix, limit)
	if v := args.Get(0); v != nil {
		return v.([]*ports.IdentityUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) ListUsers(ctx context.Context, limit int, nextToken string) ([]*ports.IdentityUser, string, error) {
	args := m.Called(ctx, limit, nextToken)
	if v := args.Get(0); v != nil {
		return v.([]*ports.IdentityUser), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *MockIdentityProvider) DeleteUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockIdentityProvider) ListGroupsForUser(ctx context.Context, username string) []string {
	args := m.Called(ctx, username)
	if v := args.Get(0); v != nil {
		return v.([]string)
	}
	return nil
}

func (m *MockIdentityProvider) ResetUserPassword(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// MockEventPublisher mocks ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockMetricsPublisher mocks ports.MetricsPublisher
type MockMetricsPublisher struct {
	mock.Mock
}

func (m *MockMetricsPublisher) RecordCount(ctx context.Context, metricName string, value int, dimensions map[string]string) {
	m.Called(ctx, metricName, value, dimensions)
}
