package dynamodb

import (
	"context"

	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/entities"
	apperrors "kernelworx-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// CampaignRepository implements ports.CampaignRepository on a DynamoDB table
// keyed by (profileId, campaignId).
type CampaignRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCampaignRepository creates a new CampaignRepository.
func NewCampaignRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CampaignRepository {
	return &CampaignRepository{client: client, tableName: tableName, logger: logger}
}

// ListByProfile enumerates every campaign under a profile.
func (r *CampaignRepository) ListByProfile(ctx context.Context, profileID string) ([]*entities.Campaign, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("profileId").Equal(expression.Value(profileID))).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build campaign query", err)
	}

	campaigns := []*entities.Campaign{}
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("query campaigns by profile", err)
		}

		var page []*entities.Campaign
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal campaigns", err)
		}
		campaigns = append(campaigns, page...)

		lastKey = out.LastEvaluatedKey
		if lastKey == nil {
			return campaigns, nil
		}
	}
}

// Put creates or replaces a campaign item.
func (r *CampaignRepository) Put(ctx context.Context, campaign *entities.Campaign) error {
	av, err := attributevalue.MarshalMap(campaign)
	if err != nil {
		return apperrors.NewDatabaseError("marshal campaign", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.NewDatabaseError("put campaign", err)
	}
	return nil
}

// Delete removes a campaign item; a no-op when already absent.
func (r *CampaignRepository) Delete(ctx context.Context, profileID, campaignID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"profileId":  &types.AttributeValueMemberS{Value: profileID},
			"campaignId": &types.AttributeValueMemberS{Value: campaignID},
		},
	}); err != nil {
		return apperrors.NewDatabaseError("delete campaign", err)
	}
	return nil
}
