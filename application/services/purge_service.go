// Package services implements the application operations behind the resolver
// boundary: cascade deletion, account lifecycle, ownership transfer, shares
// and invites.
package services

import (
	"context"

	"kernelworx-backend/application/ports"
	"kernelworx-backend/pkg/identifiers"

	"go.uber.org/zap"
)

// DeletionPolicy selects how a purge sub-operation reacts to a single item
// failing to delete. Admin bulk deletes keep going so one bad row cannot
// block the rest; the self-service account deletion path aborts instead,
// because it must be all-or-nothing from the user's perspective.
type DeletionPolicy int

const (
	// BestEffort logs the failed item and continues the loop.
	BestEffort DeletionPolicy = iota
	// Strict surfaces the first failure and stops.
	Strict
)

// PurgeCounts aggregates how many records of each kind a purge affected.
type PurgeCounts struct {
	Orders    int `json:"orders"`
	Campaigns int `json:"campaigns"`
	Shares    int `json:"shares"`
	Profiles  int `json:"profiles"`
	Catalogs  int `json:"catalogs"`
}

// PurgeService walks the owned-profile graph of an account and removes or
// tombstones every record hanging off it. Each sub-operation is independent,
// idempotent and retryable; an account that owns nothing yields zero counts,
// not an error. Authorization is the boundary's responsibility.
type PurgeService struct {
	profiles  ports.ProfileRepository
	campaigns ports.CampaignRepository
	orders    ports.OrderRepository
	shares    ports.ShareRepository
	catalogs  ports.CatalogRepository
	metrics   ports.MetricsPublisher
	logger    *zap.Logger
}

// NewPurgeService creates a PurgeService.
func NewPurgeService(
	profiles ports.ProfileRepository,
	campaigns ports.CampaignRepository,
	orders ports.OrderRepository,
	shares ports.ShareRepository,
	catalogs ports.CatalogRepository,
	metrics ports.MetricsPublisher,
	logger *zap.Logger,
) *PurgeService {
	return &PurgeService{
		profiles:  profiles,
		campaigns: campaigns,
		orders:    orders,
		shares:    shares,
		catalogs:  catalogs,
		metrics:   metrics,
		logger:    logger,
	}
}

// DeleteOrders removes every order under every campaign of every profile the
// account owns. Returns the number of orders deleted.
func (s *PurgeService) DeleteOrders(ctx context.Context, accountID string, policy DeletionPolicy) (int, error) {
	dbAccountID := identifiers.EnsureAccountID(accountID)

	profiles, err := s.profiles.ListByOwner(ctx, dbAccountID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, profile := range profiles {
		campaigns, err := s.campaigns.ListByProfile(ctx, profile.ProfileID)
		if err != nil {
			return deleted, err
		}
		for _, campaign := range campaigns {
			orders, err := s.orders.ListByCampaign(ctx, campaign.CampaignID)
			if err != nil {
				return deleted, err
			}
			for _, order := range orders {
				if err := s.orders.Delete(ctx, campaign.CampaignID, order.OrderID); err != nil {
					if policy == Strict {
						return deleted, err
					}
					s.logger.Warn("failed to delete order, continuing",
						zap.String("campaignId", campaign.CampaignID),
						zap.String("orderId", order.OrderID),
						zap.Error(err),
					)
					continue
				}
				deleted++
			}
		}
	}

	s.logger.Info("deleted user orders", zap.String("accountId", accountID), zap.Int("count", deleted))
	return deleted, nil
}

// DeleteCampaigns removes every campaign under every profile the account
// owns. Orders must be purged first: they reference campaigns.
func (s *PurgeService) DeleteCampaigns(ctx context.Context, accountID string, policy DeletionPolicy) (int, error) {
	dbAccountID := identifiers.EnsureAccountID(accountID)

	profiles, err := s.profiles.ListByOwner(ctx, dbAccountID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, profile := range profiles {
		campaigns, err := s.campaigns.ListByProfile(ctx, profile.ProfileID)
		if err != nil {
			return deleted, err
		}
		for _, campaign := range campaigns {
			if err := s.campaigns.Delete(ctx, profile.ProfileID, campaign.CampaignID); err != nil {
				if policy == Strict {
					return deleted, err
				}
				s.logger.Warn("failed to delete campaign, continuing",
					zap.String("profileId", profile.ProfileID),
					zap.String("campaignId", campaign.CampaignID),
					zap.Error(err),
				)
				continue
			}
			deleted++
		}
	}

	s.logger.Info("deleted user campaigns", zap.String("accountId", accountID), zap.Int("count", deleted))
	return deleted, nil
}

// DeleteShares removes every share on every profile the account owns,
// releasing other accounts' grants to those profiles.
func (s *PurgeService) DeleteShares(ctx context.Context, accountID string, policy DeletionPolicy) (int, error) {
	dbAccountID := identifiers.EnsureAccountID(accountID)

	profiles, err := s.profiles.ListByOwner(ctx, dbAccountID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, profile := range profiles {
		shares, err := s.shares.ListByProfile(ctx, profile.ProfileID)
		if err != nil {
			return deleted, err
		}
		for _, share := range shares {
			if err := s.shares.Delete(ctx, profile.ProfileID, share.TargetAccountID); err != nil {
				if policy == Strict {
					return deleted, err
				}
				s.logger.Warn("failed to delete share, continuing",
					zap.String("profileId", profile.ProfileID),
					zap.String("targetAccountId", share.TargetAccountID),
					zap.Error(err),
				)
				continue
			}
			deleted++
		}
	}

	s.logger.Info("deleted user shares", zap.String("accountId", accountID), zap.Int("count", deleted))
	return deleted, nil
}

// DeleteProfiles removes every profile the account owns. The enumeration
// already yields the composite keys, so no re-query per item is needed.
// Campaigns and shares must be purged first.
func (s *PurgeService) DeleteProfiles(ctx context.Context, accountID string, policy DeletionPolicy) (int, error) {
	dbAccountID := identifiers.EnsureAccountID(accountID)

	profiles, err := s.profiles.ListByOwner(ctx, dbAccountID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, profile := range profiles {
		if err := s.profiles.Delete(ctx, dbAccountID, profile.ProfileID); err != nil {
			if policy == Strict {
				return deleted, err
			}
			s.logger.Warn("failed to delete profile, continuing",
				zap.String("profileId", profile.ProfileID),
				zap.Error(err),
			)
			continue
		}
		deleted++
	}

	s.logger.Info("deleted user profiles", zap.String("accountId", accountID), zap.Int("count", deleted))
	return deleted, nil
}

// SoftDeleteCatalogs tombstones the account's catalogs by setting isDeleted.
// Catalogs are never physically removed: historical orders and campaigns keep
// referencing them. Already-flagged catalogs are excluded by the scan filter,
// so reruns do not double-count.
func (s *PurgeService) SoftDeleteCatalogs(ctx context.Context, accountID string, policy DeletionPolicy) (int, error) {
	dbAccountID := identifiers.EnsureAccountID(accountID)

	catalogs, err := s.catalogs.ListActiveByOwnerScan(ctx, dbAccountID)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, catalog := range catalogs {
		if err := s.catalogs.MarkDeleted(ctx, catalog.CatalogID); err != nil {
			if policy == Strict {
				return flagged, err
			}
			s.logger.Warn("failed to soft-delete catalog, continuing",
				zap.String("catalogId", catalog.CatalogID),
				zap.Error(err),
			)
			continue
		}
		flagged++
	}

	s.logger.Info("soft-deleted user catalogs", zap.String("accountId", accountID), zap.Int("count", flagged))
	return flagged, nil
}

// PurgeAll runs the five sub-operations in dependency order: orders before
// campaigns, campaigns before profiles, shares before profiles, catalogs
// last (independent, soft-delete). The account record itself is the caller's
// responsibility, removed only after all of these succeed.
func (s *PurgeService) PurgeAll(ctx context.Context, accountID string, policy DeletionPolicy) (PurgeCounts, error) {
	var counts PurgeCounts
	var err error

	if counts.Orders, err = s.DeleteOrders(ctx, accountID, policy); err != nil {
		return counts, err
	}
	if counts.Campaigns, err = s.DeleteCampaigns(ctx, accountID, policy); err != nil {
		return counts, err
	}
	if counts.Shares, err = s.DeleteShares(ctx, accountID, policy); err != nil {
		return counts, err
	}
	if counts.Profiles, err = s.DeleteProfiles(ctx, accountID, policy); err != nil {
		return counts, err
	}
	if counts.Catalogs, err = s.SoftDeleteCatalogs(ctx, accountID, policy); err != nil {
		return counts, err
	}

	s.recordCounts(ctx, counts)
	return counts, nil
}

func (s *PurgeService) recordCounts(ctx context.Context, counts PurgeCounts) {
	if s.metrics == nil {
		return
	}
	// Per-account dimensions would explode metric cardinality; the account id
	// is in the logs.
	dims := map[string]string{"Operation": "PurgeAll"}
	s.metrics.RecordCount(ctx, "PurgedOrders", counts.Orders, dims)
	s.metrics.RecordCount(ctx, "PurgedCampaigns", counts.Campaigns, dims)
	s.metrics.RecordCount(ctx, "PurgedShares", counts.Shares, dims)
	s.metrics.RecordCount(ctx, "PurgedProfiles", counts.Profiles, dims)
	s.metrics.RecordCount(ctx, "PurgedCatalogs", counts.Catalogs, dims)
}
