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

// ProfileRepository implements ports.ProfileRepository on a DynamoDB table
// keyed by (ownerAccountId, profileId) with a profileId GSI.
type ProfileRepository struct {
	client      *dynamodb.Client
	tableName   string
	idIndexName string
	logger      *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(client *dynamodb.Client, tableName, idIndexName string, logger *zap.Logger) ports.ProfileRepository {
	return &ProfileRepository{client: client, tableName: tableName, idIndexName: idIndexName, logger: logger}
}

// GetOwned fetches a profile under its owner's key. The read is strongly
// consistent: the access checker's owner fast path must see a profile the
// same invocation just wrote.
func (r *ProfileRepository) GetOwned(ctx context.Context, ownerAccountID, profileID string) (*entities.Profile, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
		Key: map[string]types.AttributeValue{
			"ownerAccountId": &types.AttributeValueMemberS{Value: ownerAccountID},
			"profileId":      &types.AttributeValueMemberS{Value: profileID},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get profile", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var profile entities.Profile
	if err := attributevalue.UnmarshalMap(out.Item, &profile); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal profile", err)
	}
	return &profile, nil
}

// FindByID resolves a profile through the profileId GSI; (nil, nil) when no
// item carries that id. GSI reads are eventually consistent.
func (r *ProfileRepository) FindByID(ctx context.Context, profileID string) (*entities.Profile, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("profileId").Equal(expression.Value(profileID))).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build profile query", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.idIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("query profile by id", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var profile entities.Profile
	if err := attributevalue.UnmarshalMap(out.Items[0], &profile); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal profile", err)
	}
	return &profile, nil
}

// ListByOwner enumerates every profile the account owns, following
// continuation keys until the query is exhausted.
func (r *ProfileRepository) ListByOwner(ctx context.Context, ownerAccountID string) ([]*entities.Profile, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("ownerAccountId").Equal(expression.Value(ownerAccountID))).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build profile query", err)
	}

	profiles := []*entities.Profile{}
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
			return nil, apperrors.NewDatabaseError("query profiles by owner", err)
		}

		var page []*entities.Profile
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal profiles", err)
		}
		profiles = append(profiles, page...)

		lastKey = out.LastEvaluatedKey
		if lastKey == nil {
			return profiles, nil
		}
	}
}

// Put creates or replaces a profile item under its owner's key.
func (r *ProfileRepository) Put(ctx context.Context, profile *entities.Profile) error {
	av, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return apperrors.NewDatabaseError("marshal profile", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.NewDatabaseError("put profile", err)
	}
	return nil
}

// Delete removes a profile item; a no-op when already absent.
func (r *ProfileRepository) Delete(ctx context.Context, ownerAccountID, profileID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"ownerAccountId": &types.AttributeValueMemberS{Value: ownerAccountID},
			"profileId":      &types.AttributeValueMemberS{Value: profileID},
		},
	}); err != nil {
		return apperrors.NewDatabaseError("delete profile", err)
	}
	return nil
}
