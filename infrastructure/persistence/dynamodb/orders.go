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

// OrderRepository implements ports.OrderRepository on a DynamoDB table keyed
// by (campaignId, orderId).
type OrderRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.OrderRepository {
	return &OrderRepository{client: client, tableName: tableName, logger: logger}
}

// ListByCampaign enumerates every order under a campaign.
func (r *OrderRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*entities.Order, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("campaignId").Equal(expression.Value(campaignID))).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build order query", err)
	}

	orders := []*entities.Order{}
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
			return nil, apperrors.NewDatabaseError("query orders by campaign", err)
		}

		var page []*entities.Order
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal orders", err)
		}
		orders = append(orders, page...)

		lastKey = out.LastEvaluatedKey
		if lastKey == nil {
			return orders, nil
		}
	}
}

// Put creates or replaces an order item.
func (r *OrderRepository) Put(ctx context.Context, order *entities.Order) error {
	av, err := attributevalue.MarshalMap(order)
	if err != nil {
		return apperrors.NewDatabaseError("marshal order", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.NewDatabaseError("put order", err)
	}
	return nil
}

// Delete removes an order item; a no-op when already absent.
func (r *OrderRepository) Delete(ctx context.Context, campaignID, orderID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"campaignId": &types.AttributeValueMemberS{Value: campaignID},
			"orderId":    &types.AttributeValueMemberS{Value: orderID},
		},
	}); err != nil {
		return apperrors.NewDatabaseError("delete order", err)
	}
	return nil
}
