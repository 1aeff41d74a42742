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

// CatalogRepository implements ports.CatalogRepository on a DynamoDB table
// keyed by catalogId, with an ownerAccountId GSI for the admin read path.
type CatalogRepository struct {
	client         *dynamodb.Client
	tableName      string
	ownerIndexName string
	logger         *zap.Logger
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(client *dynamodb.Client, tableName, ownerIndexName string, logger *zap.Logger) ports.CatalogRepository {
	return &CatalogRepository{client: client, tableName: tableName, ownerIndexName: ownerIndexName, logger: logger}
}

// Get fetches a catalog; (nil, nil) when absent.
func (r *CatalogRepository) Get(ctx context.Context, catalogID string) (*entities.Catalog, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"catalogId": &types.AttributeValueMemberS{Value: catalogID},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get catalog", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var catalog entities.Catalog
	if err := attributevalue.UnmarshalMap(out.Item, &catalog); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal catalog", err)
	}
	return &catalog, nil
}

// Put creates or replaces a catalog item.
func (r *CatalogRepository) Put(ctx context.Context, catalog *entities.Catalog) error {
	av, err := attributevalue.MarshalMap(catalog)
	if err != nil {
		return apperrors.NewDatabaseError("marshal catalog", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.NewDatabaseError("put catalog", err)
	}
	return nil
}

// activeOwnerFilter matches the owner's catalogs whose soft-delete flag is
// absent or false.
func activeOwnerFilter(ownerAccountID string) expression.ConditionBuilder {
	return expression.Name("ownerAccountId").Equal(expression.Value(ownerAccountID)).
		And(expression.Name("isDeleted").AttributeNotExists().
			Or(expression.Name("isDeleted").Equal(expression.Value(false))))
}

// ListActiveByOwnerScan finds the owner's not-yet-deleted catalogs with a
// paginated filtered scan. The purge path uses this so rows with missing or
// malformed index attributes are still found.
func (r *CatalogRepository) ListActiveByOwnerScan(ctx context.Context, ownerAccountID string) ([]*entities.Catalog, error) {
	expr, err := expression.NewBuilder().WithFilter(activeOwnerFilter(ownerAccountID)).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build catalog filter", err)
	}

	catalogs := []*entities.Catalog{}
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan catalogs by owner", err)
		}

		var page []*entities.Catalog
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal catalogs", err)
		}
		catalogs = append(catalogs, page...)

		lastKey = out.LastEvaluatedKey
		if lastKey == nil {
			return catalogs, nil
		}
	}
}

// ListActiveByOwner serves the admin read path through the owner GSI.
func (r *CatalogRepository) ListActiveByOwner(ctx context.Context, ownerAccountID string) ([]*entities.Catalog, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("ownerAccountId").Equal(expression.Value(ownerAccountID))).
		WithFilter(expression.Name("isDeleted").AttributeNotExists().
			Or(expression.Name("isDeleted").Equal(expression.Value(false)))).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build catalog query", err)
	}

	catalogs := []*entities.Catalog{}
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.ownerIndexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("query catalogs by owner", err)
		}

		var page []*entities.Catalog
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal catalogs", err)
		}
		catalogs = append(catalogs, page...)

		lastKey = out.LastEvaluatedKey
		if lastKey == nil {
			return catalogs, nil
		}
	}
}

// MarkDeleted sets the soft-delete flag, leaving the record in place for the
// campaigns and orders that reference it.
func (r *CatalogRepository) MarkDeleted(ctx context.Context, catalogID string) error {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.
			Set(expression.Name("isDeleted"), expression.Value(true)).
			Set(expression.Name("updatedAt"), expression.Value(time.Now().UTC().Format(time.RFC3339)))).
		Build()
	if err != nil {
		return apperrors.NewDatabaseError("build catalog update", err)
	}

	if _, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"catalogId": &types.AttributeValueMemberS{Value: catalogID},
		},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}); err != nil {
		return apperrors.NewDatabaseError("soft-delete catalog", err)
	}
	return nil
}
