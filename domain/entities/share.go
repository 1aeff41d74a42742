package entities

import "kernelworx-backend/domain/permissions"

// Share grants a non-owner account access to a profile. Keyed by
// (profileId, targetAccountId). A share becomes redundant the moment its
// target becomes the profile's owner and must then be removed.
type Share struct {
	ProfileID          string   `dynamodbav:"profileId" json:"profileId"`
	TargetAccountID    string   `dynamodbav:"targetAccountId" json:"targetAccountId"`
	ShareID            string   `dynamodbav:"shareId" json:"shareId"`
	OwnerAccountID     string   `dynamodbav:"ownerAccountId" json:"ownerAccountId"`
	Permissions        []string `dynamodbav:"permissions" json:"permissions"`
	CreatedByAccountID string   `dynamodbav:"createdByAccountId,omitempty" json:"createdByAccountId,omitempty"`
	CreatedAt          string   `dynamodbav:"createdAt" json:"createdAt"`
}

// PermissionSet resolves the stored permission values into a normalized set.
func (s *Share) PermissionSet() permissions.Set {
	return permissions.NormalizeStrings(s.Permissions)
}
