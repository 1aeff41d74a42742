package di

import (
	"kernelworx-backend/application/access"
	"kernelworx-backend/application/ports"
	"kernelworx-backend/application/services"
	"kernelworx-backend/infrastructure/config"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Accounts  ports.AccountRepository
	Profiles  ports.ProfileRepository
	Shares    ports.ShareRepository
	Campaigns ports.CampaignRepository
	Orders    ports.OrderRepository
	Catalogs  ports.CatalogRepository
	Invites   ports.InviteRepository

	Identity  ports.IdentityProvider
	Publisher ports.EventPublisher
	Metrics   ports.MetricsPublisher

	Checker *access.Checker

	PurgeService    *services.PurgeService
	AccountService  *services.AccountService
	TransferService *services.TransferService
	AdminService    *services.AdminService
	ShareService    *services.ShareService
	InviteService   *services.InviteService
}
