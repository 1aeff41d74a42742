package dynamodb

import (
	"context"
	"time"

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

// InviteRepository implements ports.InviteRepository on a DynamoDB table
// keyed by inviteCode.
type InviteRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewInviteRepository creates a new InviteRepository.
func NewInviteRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.InviteRepository {
	return &InviteRepository{client: client, tableName: tableName, logger: logger}
}

// Get fetches an invite; (nil, nil) when absent.
func (r *InviteRepository) Get(ctx context.Context, inviteCode string) (*entities.Invite, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"inviteCode": &types.AttributeValueMemberS{Value: inviteCode},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get invite", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var invite entities.Invite
	if err := attributevalue.UnmarshalMap(out.Item, &invite); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal invite", err)
	}
	return &invite, nil
}

// PutIfAbsent creates an invite, failing with Conflict on a code collision.
func (r *InviteRepository) PutIfAbsent(ctx context.Context, invite *entities.Invite) error {
	av, err := attributevalue.MarshalMap(invite)
	if err != nil {
		return apperrors.NewDatabaseError("marshal invite", err)
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("inviteCode"))).
		Build()
	if err != nil {
		return apperrors.NewDatabaseError("build invite condition", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	}); err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("invite code already exists")
		}
		return apperrors.NewDatabaseError("put invite", err)
	}
	return nil
}

// MarkUsed consumes an invite. Fails with NotFound when the code is gone, so
// a racing redeem cannot recreate a deleted invite as a bare tombstone.
func (r *InviteRepository) MarkUsed(ctx context.Context, inviteCode, usedByAccountID string) error {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.
			Set(expression.Name("used"), expression.Value(true)).
			Set(expression.Name("usedByAccountId"), expression.Value(usedByAccountID)).
			Set(expression.Name("usedAt"), expression.Value(time.Now().UTC().Format(time.RFC3339)))).
		WithCondition(expression.AttributeExists(expression.Name("inviteCode"))).
		Build()
	if err != nil {
		return apperrors.NewDatabaseError("build invite update", err)
	}

	if _, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"inviteCode": &types.AttributeValueMemberS{Value: inviteCode},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}); err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewNotFoundError("invite")
		}
		return apperrors.NewDatabaseError("mark invite used", err)
	}
	return nil
}

// Delete removes an invite; a no-op when already absent.
func (r *InviteRepository) Delete(ctx context.Context, inviteCode string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"inviteCode": &types.AttributeValueMemberS{Value: inviteCode},
		},
	}); err != nil {
		return apperrors.NewDatabaseError("delete invite", err)
	}
	return nil
}
