package di

import (
	"context"

	"kernelworx-backend/application/access"
	"kernelworx-backend/application/ports"
	"kernelworx-backend/application/services"
	"kernelworx-backend/infrastructure/config"
	"kernelworx-backend/infrastructure/identity"
	"kernelworx-backend/infrastructure/messaging"
	"kernelworx-backend/infrastructure/metrics"
	"kernelworx-backend/infrastructure/persistence/dynamodb"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awscognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCognitoClient creates a Cognito client
func ProvideCognitoClient(awsCfg aws.Config) *awscognito.Client {
	return awscognito.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideAccountRepository creates the account repository
func ProvideAccountRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.AccountRepository {
	return dynamodb.NewAccountRepository(client, cfg.AccountsTable, logger)
}

// ProvideProfileRepository creates the profile repository
func ProvideProfileRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProfileRepository {
	return dynamodb.NewProfileRepository(client, cfg.ProfilesTable, cfg.ProfileIDIndexName, logger)
}

// ProvideShareRepository creates the share repository
func ProvideShareRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ShareRepository {
	return dynamodb.NewShareRepository(client, cfg.SharesTable, logger)
}

// ProvideCampaignRepository creates the campaign repository
func ProvideCampaignRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CampaignRepository {
	return dynamodb.NewCampaignRepository(client, cfg.CampaignsTable, logger)
}

// ProvideOrderRepository creates the order repository
func ProvideOrderRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.OrderRepository {
	return dynamodb.NewOrderRepository(client, cfg.OrdersTable, logger)
}

// ProvideCatalogRepository creates the catalog repository
func ProvideCatalogRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CatalogRepository {
	return dynamodb.NewCatalogRepository(client, cfg.CatalogsTable, cfg.OwnerIndexName, logger)
}

// ProvideInviteRepository creates the invite repository
func ProvideInviteRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.InviteRepository {
	return dynamodb.NewInviteRepository(client, cfg.InvitesTable, logger)
}

// ProvideIdentityProvider creates the Cognito-backed identity provider
func ProvideIdentityProvider(client *awscognito.Client, cfg *config.Config, logger *zap.Logger) ports.IdentityProvider {
	return identity.NewCognitoProvider(client, cfg.UserPoolID, logger)
}

// ProvideEventPublisher creates the event publisher. Without a configured bus
// events are dropped.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return messaging.NoopPublisher{}
	}
	return messaging.NewEventBridgePublisher(client, cfg.EventBusName, logger)
}

// ProvideMetricsPublisher creates the metrics publisher, a no-op unless
// metrics are enabled.
func ProvideMetricsPublisher(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) ports.MetricsPublisher {
	if !cfg.EnableMetrics {
		return metrics.NoopPublisher{}
	}
	return metrics.NewCloudWatchPublisher(client, logger)
}

// ProvideAccessChecker creates the access checker
func ProvideAccessChecker(profiles ports.ProfileRepository, shares ports.ShareRepository, logger *zap.Logger) *access.Checker {
	return access.NewChecker(profiles, shares, logger)
}

// ProvidePurgeService creates the purge service
func ProvidePurgeService(
	profiles ports.ProfileRepository,
	campaigns ports.CampaignRepository,
	orders ports.OrderRepository,
	shares ports.ShareRepository,
	catalogs ports.CatalogRepository,
	metricsPub ports.MetricsPublisher,
	logger *zap.Logger,
) *services.PurgeService {
	return services.NewPurgeService(profiles, campaigns, orders, shares, catalogs, metricsPub, logger)
}

// ProvideAccountService creates the account service
func ProvideAccountService(
	accounts ports.AccountRepository,
	purge *services.PurgeService,
	identityProvider ports.IdentityProvider,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.AccountService {
	return services.NewAccountService(accounts, purge, identityProvider, publisher, logger)
}

// ProvideTransferService creates the transfer service
func ProvideTransferService(
	profiles ports.ProfileRepository,
	shares ports.ShareRepository,
	accounts ports.AccountRepository,
	checker *access.Checker,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.TransferService {
	return services.NewTransferService(profiles, shares, accounts, checker, publisher, logger)
}

// ProvideAdminService creates the admin service
func ProvideAdminService(
	accounts ports.AccountRepository,
	profiles ports.ProfileRepository,
	catalogs ports.CatalogRepository,
	purge *services.PurgeService,
	identityProvider ports.IdentityProvider,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.AdminService {
	return services.NewAdminService(accounts, profiles, catalogs, purge, identityProvider, publisher, logger)
}

// ProvideShareService creates the share service
func ProvideShareService(
	shares ports.ShareRepository,
	accounts ports.AccountRepository,
	checker *access.Checker,
	logger *zap.Logger,
) *services.ShareService {
	return services.NewShareService(shares, accounts, checker, logger)
}

// ProvideInviteService creates the invite service
func ProvideInviteService(
	invites ports.InviteRepository,
	shares ports.ShareRepository,
	checker *access.Checker,
	logger *zap.Logger,
) *services.InviteService {
	return services.NewInviteService(invites, shares, checker, logger)
}
