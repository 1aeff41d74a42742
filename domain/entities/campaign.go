package entities

// Campaign belongs to exactly one profile and references a catalog. Keyed by
// (profileId, campaignId). Hard-deleted with its owning profile.
type Campaign struct {
	ProfileID    string  `dynamodbav:"profileId" json:"profileId"`
	CampaignID   string  `dynamodbav:"campaignId" json:"campaignId"`
	CampaignName string  `dynamodbav:"campaignName" json:"campaignName"`
	CampaignYear int     `dynamodbav:"campaignYear" json:"campaignYear"`
	CatalogID    string  `dynamodbav:"catalogId" json:"catalogId"`
	StartDate    string  `dynamodbav:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      string  `dynamodbav:"endDate,omitempty" json:"endDate,omitempty"`
	GoalAmount   float64 `dynamodbav:"goalAmount,omitempty" json:"goalAmount,omitempty"`
	CreatedAt    string  `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt    string  `dynamodbav:"updatedAt" json:"updatedAt"`
}
