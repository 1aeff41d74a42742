package entities

// Invite is a pending share offer, keyed by a generated code. It is consumed
// (marked used) when redeemed or deleted independently.
type Invite struct {
	InviteCode      string   `dynamodbav:"inviteCode" json:"inviteCode"`
	ProfileID       string   `dynamodbav:"profileId" json:"profileId"`
	OwnerAccountID  string   `dynamodbav:"ownerAccountId" json:"ownerAccountId"`
	Permissions     []string `dynamodbav:"permissions" json:"permissions"`
	Used            bool     `dynamodbav:"used" json:"used"`
	UsedByAccountID string   `dynamodbav:"usedByAccountId,omitempty" json:"usedByAccountId,omitempty"`
	CreatedAt       string   `dynamodbav:"createdAt" json:"createdAt"`
	ExpiresAt       string   `dynamodbav:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}
