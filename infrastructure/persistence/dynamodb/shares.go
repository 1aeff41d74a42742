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

// ShareRepository implements ports.ShareRepository on a DynamoDB table keyed
// by (profileId, targetAccountId).
type ShareRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewShareRepository creates a new ShareRepository.
func NewShareRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ShareRepository {
	return &ShareRepository{client: client, tableName: tableName, logger: logger}
}

// Get fetches a share; (nil, nil) when absent.
func (r *ShareRepository) Get(ctx context.Context, profileID, targetAccountID string) (*entities.Share, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"profileId":       &types.AttributeValueMemberS{Value: profileID},
			"targetAccountId": &types.AttributeValueMemberS{Value: targetAccountID},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get share", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var share entities.Share
	if err := attributevalue.UnmarshalMap(out.Item, &share); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal share", err)
	}
	return &share, nil
}

// ListByProfile enumerates every share on a profile.
func (r *ShareRepository) ListByProfile(ctx context.Context, profileID string) ([]*entities.Share, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("profileId").Equal(expression.Value(profileID))).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build share query", err)
	}

	shares := []*entities.Share{}
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
			return nil, apperrors.NewDatabaseError("query shares by profile", err)
		}

		var page []*entities.Share
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal shares", err)
		}
		shares = append(shares, page...)

		lastKey = out.LastEvaluatedKey
		if lastKey == nil {
			return shares, nil
		}
	}
}

// PutIfAbsent creates a share, failing with Conflict when one already exists
// for the same (profile, target) pair.
func (r *ShareRepository) PutIfAbsent(ctx context.Context, share *entities.Share) error {
	av, err := attributevalue.MarshalMap(share)
	if err != nil {
		return apperrors.NewDatabaseError("marshal share", err)
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("profileId"))).
		Build()
	if err != nil {
		return apperrors.NewDatabaseError("build share condition", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
	}); err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("a share already exists for this account on this profile")
		}
		return apperrors.NewDatabaseError("put share", err)
	}
	return nil
}

// Delete removes a share; a no-op when already absent.
func (r *ShareRepository) Delete(ctx context.Context, profileID, targetAccountID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"profileId":       &types.AttributeValueMemberS{Value: profileID},
			"targetAccountId": &types.AttributeValueMemberS{Value: targetAccountID},
		},
	}); err != nil {
		return apperrors.NewDatabaseError("delete share", err)
	}
	return nil
}
