package entities

import "kernelworx-backend/pkg/identifiers"

// Profile is a sellable unit owned by exactly one account at a time.
// Ownership is part of the primary key (PK ownerAccountId, SK profileId), so
// changing owner means re-keying the item, not updating it in place. The
// profileId GSI serves lookups when only the profile id is known.
type Profile struct {
	OwnerAccountID string `dynamodbav:"ownerAccountId" json:"ownerAccountId"`
	ProfileID      string `dynamodbav:"profileId" json:"profileId"`
	SellerName     string `dynamodbav:"sellerName" json:"sellerName"`
	UnitType       string `dynamodbav:"unitType,omitempty" json:"unitType,omitempty"`
	UnitNumber     int    `dynamodbav:"unitNumber,omitempty" json:"unitNumber,omitempty"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt      string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// OwnedBy reports whether the account owns this profile, tolerating stored
// owner ids with or without the ACCOUNT# prefix.
func (p *Profile) OwnedBy(accountID string) bool {
	return p.OwnerAccountID == accountID ||
		p.OwnerAccountID == identifiers.EnsureAccountID(accountID) ||
		identifiers.StripAccountID(p.OwnerAccountID) == accountID
}
