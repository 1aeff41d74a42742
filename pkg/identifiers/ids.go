// Package identifiers normalizes the namespaced entity ids used across the
// multi-table design. Every stored key carries its entity prefix; callers may
// pass ids with or without it.
package identifiers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	AccountPrefix  = "ACCOUNT#"
	ProfilePrefix  = "PROFILE#"
	CampaignPrefix = "CAMPAIGN#"
	OrderPrefix    = "ORDER#"
	CatalogPrefix  = "CATALOG#"
	SharePrefix    = "SHARE#"
	ProductPrefix  = "PRODUCT#"
)

func ensure(prefix, id string) string {
	if id == "" {
		return ""
	}
	if strings.HasPrefix(id, prefix) {
		return id
	}
	return prefix + id
}

// EnsureAccountID idempotently applies the ACCOUNT# prefix.
func EnsureAccountID(id string) string { return ensure(AccountPrefix, id) }

// EnsureProfileID idempotently applies the PROFILE# prefix.
func EnsureProfileID(id string) string { return ensure(ProfilePrefix, id) }

// EnsureCampaignID idempotently applies the CAMPAIGN# prefix.
func EnsureCampaignID(id string) string { return ensure(CampaignPrefix, id) }

// EnsureOrderID idempotently applies the ORDER# prefix.
func EnsureOrderID(id string) string { return ensure(OrderPrefix, id) }

// EnsureCatalogID idempotently applies the CATALOG# prefix.
func EnsureCatalogID(id string) string { return ensure(CatalogPrefix, id) }

// StripAccountID removes the ACCOUNT# prefix, for comparing against raw
// identity-provider subject ids.
func StripAccountID(id string) string { return strings.TrimPrefix(id, AccountPrefix) }

// NewProfileID mints a prefixed profile id.
func NewProfileID() string { return fmt.Sprintf("%s%s", ProfilePrefix, uuid.NewString()) }

// NewCampaignID mints a prefixed campaign id.
func NewCampaignID() string { return fmt.Sprintf("%s%s", CampaignPrefix, uuid.NewString()) }

// NewOrderID mints a prefixed order id.
func NewOrderID() string { return fmt.Sprintf("%s%s", OrderPrefix, uuid.NewString()) }

// NewCatalogID mints a prefixed catalog id.
func NewCatalogID() string { return fmt.Sprintf("%s%s", CatalogPrefix, uuid.NewString()) }

// NewShareID mints a prefixed share id.
func NewShareID() string { return fmt.Sprintf("%s%s", SharePrefix, uuid.NewString()) }

// NewProductID mints a prefixed product id.
func NewProductID() string { return fmt.Sprintf("%s%s", ProductPrefix, uuid.NewString()) }

// NewInviteCode mints a short invite code.
func NewInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
