//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"kernelworx-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCognitoClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideAccountRepository,
	ProvideProfileRepository,
	ProvideShareRepository,
	ProvideCampaignRepository,
	ProvideOrderRepository,
	ProvideCatalogRepository,
	ProvideInviteRepository,
	ProvideIdentityProvider,
	ProvideEventPublisher,
	ProvideMetricsPublisher,
	ProvideAccessChecker,
	ProvidePurgeService,
	ProvideAccountService,
	ProvideTransferService,
	ProvideAdminService,
	ProvideShareService,
	ProvideInviteService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
