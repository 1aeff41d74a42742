// Package dynamodb implements the application's repository ports on top of
// the document store. One repository per table; lookups return (nil, nil)
// when the item is absent and deletes are no-ops on missing keys.
package dynamodb

import (
	"context"
	"errors"
	"strings"
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

// isConditionalCheckFailed reports whether a write was rejected by its
// condition expression.
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// AccountRepository implements ports.AccountRepository on a DynamoDB table
// keyed by accountId.
type AccountRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.AccountRepository {
	return &AccountRepository{client: client, tableName: tableName, logger: logger}
}

// Get fetches an account record; (nil, nil) when absent.
func (r *AccountRepository) Get(ctx context.Context, accountID string) (*entities.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"accountId": &types.AttributeValueMemberS{Value: accountID},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get account", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var account entities.Account
	if err := attributevalue.UnmarshalMap(out.Item, &account); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal account", err)
	}
	return &account, nil
}

// Put creates or replaces an account record.
func (r *AccountRepository) Put(ctx context.Context, account *entities.Account) error {
	av, err := attributevalue.MarshalMap(account)
	if err != nil {
		return apperrors.NewDatabaseError("marshal account", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return apperrors.NewDatabaseError("put account", err)
	}
	return nil
}

// Update applies the non-nil fields of the update in place. The condition
// expression makes an update against a missing record fail instead of
// creating a partial one.
func (r *AccountRepository) Update(ctx context.Context, accountID string, update entities.AccountUpdate) (*entities.Account, error) {
	builder := expression.Set(expression.Name("updatedAt"), expression.Value(time.Now().UTC().Format(time.RFC3339)))
	if update.GivenName != nil {
		builder = builder.Set(expression.Name("givenName"), expression.Value(*update.GivenName))
	}
	if update.FamilyName != nil {
		builder = builder.Set(expression.Name("familyName"), expression.Value(*update.FamilyName))
	}
	if update.City != nil {
		builder = builder.Set(expression.Name("city"), expression.Value(*update.City))
	}
	if update.State != nil {
		builder = builder.Set(expression.Name("state"), expression.Value(*update.State))
	}
	if update.UnitType != nil {
		builder = builder.Set(expression.Name("unitType"), expression.Value(*update.UnitType))
	}
	if update.UnitNumber != nil {
		builder = builder.Set(expression.Name("unitNumber"), expression.Value(*update.UnitNumber))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(builder).
		WithCondition(expression.AttributeExists(expression.Name("accountId"))).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build account update", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"accountId": &types.AttributeValueMemberS{Value: accountID},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, apperrors.NewNotFoundError("account")
		}
		return nil, apperrors.NewDatabaseError("update account", err)
	}

	var account entities.Account
	if err := attributevalue.UnmarshalMap(out.Attributes, &account); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal account", err)
	}
	return &account, nil
}

// Delete removes an account record; a no-op when already absent.
func (r *AccountRepository) Delete(ctx context.Context, accountID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"accountId": &types.AttributeValueMemberS{Value: accountID},
		},
	}); err != nil {
		return apperrors.NewDatabaseError("delete account", err)
	}
	return nil
}

// SearchByText scans for accounts whose email or name contains the query,
// case-insensitively. DynamoDB's contains() is case-sensitive, so matching
// happens client-side over each scanned page.
func (r *AccountRepository) SearchByText(ctx context.Context, query string, limit int) ([]*entities.Account, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || limit <= 0 {
		return []*entities.Account{}, nil
	}

	matches := make([]*entities.Account, 0, limit)
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan accounts", err)
		}

		var page []*entities.Account
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal accounts", err)
		}
		for _, account := range page {
			if accountMatches(account, needle) {
				matches = append(matches, account)
				if len(matches) >= limit {
					return matches, nil
				}
			}
		}

		lastKey = out.LastEvaluatedKey
		if lastKey == nil {
			return matches, nil
		}
	}
}

func accountMatches(account *entities.Account, needle string) bool {
	return strings.Contains(strings.ToLower(account.Email), needle) ||
		strings.Contains(strings.ToLower(account.GivenName), needle) ||
		strings.Contains(strings.ToLower(account.FamilyName), needle)
}
