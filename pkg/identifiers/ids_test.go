package identifiers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureIsIdempotent(t *testing.T) {
	assert.Equal(t, "ACCOUNT#abc", EnsureAccountID("abc"))
	assert.Equal(t, "ACCOUNT#abc", EnsureAccountID("ACCOUNT#abc"))
	assert.Equal(t, "ACCOUNT#abc", EnsureAccountID(EnsureAccountID("abc")))

	assert.Equal(t, "PROFILE#p1", EnsureProfileID("p1"))
	assert.Equal(t, "CAMPAIGN#c1", EnsureCampaignID("c1"))
	assert.Equal(t, "ORDER#o1", EnsureOrderID("o1"))
	assert.Equal(t, "CATALOG#k1", EnsureCatalogID("k1"))
}

func TestEnsureEmptyStaysEmpty(t *testing.T) {
	assert.Equal(t, "", EnsureAccountID(""))
	assert.Equal(t, "", EnsureProfileID(""))
}

func TestStripAccountID(t *testing.T) {
	assert.Equal(t, "abc", StripAccountID("ACCOUNT#abc"))
	assert.Equal(t, "abc", StripAccountID("abc"))
}

func TestNewIDsCarryPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewProfileID(), ProfilePrefix))
	assert.True(t, strings.HasPrefix(NewCampaignID(), CampaignPrefix))
	assert.True(t, strings.HasPrefix(NewOrderID(), OrderPrefix))
	assert.True(t, strings.HasPrefix(NewCatalogID(), CatalogPrefix))
	assert.True(t, strings.HasPrefix(NewShareID(), SharePrefix))
}

func TestNewInviteCodeShape(t *testing.T) {
	code := NewInviteCode()
	assert.Len(t, code, 8)
	assert.Equal(t, strings.ToUpper(code), code)
	assert.NotEqual(t, code, NewInviteCode())
}
