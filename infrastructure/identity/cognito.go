// Package identity adapts the Cognito user pool to the application's
// IdentityProvider port.
package identity

import (
	"context"
	"errors"
	"fmt"

	"kernelworx-backend/application/ports"
	apperrors "kernelworx-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.uber.org/zap"
)

// CognitoProvider implements ports.IdentityProvider against a Cognito user
// pool.
type CognitoProvider struct {
	client     *cognitoidentityprovider.Client
	userPoolID string
	logger     *zap.Logger
}

// NewCognitoProvider creates a new CognitoProvider.
func NewCognitoProvider(client *cognitoidentityprovider.Client, userPoolID string, logger *zap.Logger) ports.IdentityProvider {
	return &CognitoProvider{client: client, userPoolID: userPoolID, logger: logger}
}

func isUserNotFound(err error) bool {
	var notFound *types.UserNotFoundException
	return errors.As(err, &notFound)
}

// requireConfigured guards every pool call. In production the config layer
// refuses to start without a pool id; this catches development setups where
// the pool was never provisioned.
func (p *CognitoProvider) requireConfigured() error {
	if p.userPoolID == "" {
		return apperrors.NewInternalError("identity provider user pool is not configured")
	}
	return nil
}

// FindUserBySub resolves a user by subject id; (nil, nil) when absent.
func (p *CognitoProvider) FindUserBySub(ctx context.Context, sub string) (*ports.IdentityUser, error) {
	return p.findOne(ctx, fmt.Sprintf(`sub = %q`, sub))
}

// FindUserByEmail resolves a user by exact email; (nil, nil) when absent.
func (p *CognitoProvider) FindUserByEmail(ctx context.Context, email string) (*ports.IdentityUser, error) {
	return p.findOne(ctx, fmt.Sprintf(`email = %q`, email))
}

func (p *CognitoProvider) findOne(ctx context.Context, filter string) (*ports.IdentityUser, error) {
	if err := p.requireConfigured(); err != nil {
		return nil, err
	}
	out, err := p.client.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(p.userPoolID),
		Filter:     aws.String(filter),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		return nil, apperrors.NewExternalError("cognito", err)
	}
	if len(out.Users) == 0 {
		return nil, nil
	}
	return fromUserType(out.Users[0]), nil
}

// SearchUsersByEmailPrefix finds users whose email starts with prefix.
func (p *CognitoProvider) SearchUsersByEmailPrefix(ctx context.Context, prefix string, limit int) ([]*ports.IdentityUser, error) {
	if err := p.requireConfigured(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 60 {
		limit = 60
	}
	out, err := p.client.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(p.userPoolID),
		Filter:     aws.String(fmt.Sprintf(`email ^= %q`, prefix)),
		Limit:      aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, apperrors.NewExternalError("cognito", err)
	}

	users := make([]*ports.IdentityUser, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, fromUserType(u))
	}
	return users, nil
}

// ListUsers pages through the pool; nextToken is empty on the last page.
func (p *CognitoProvider) ListUsers(ctx context.Context, limit int, nextToken string) ([]*ports.IdentityUser, string, error) {
	if err := p.requireConfigured(); err != nil {
		return nil, "", err
	}
	if limit <= 0 || limit > 60 {
		limit = 60
	}
	input := &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(p.userPoolID),
		Limit:      aws.Int32(int32(limit)),
	}
	if nextToken != "" {
		input.PaginationToken = aws.String(nextToken)
	}

	out, err := p.client.ListUsers(ctx, input)
	if err != nil {
		return nil, "", apperrors.NewExternalError("cognito", err)
	}

	users := make([]*ports.IdentityUser, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, fromUserType(u))
	}
	return users, aws.ToString(out.PaginationToken), nil
}

// DeleteUser removes the user from the pool. A pool-side "user not found"
// surfaces as a NotFound AppError so callers can treat the user as already
// deleted.
func (p *CognitoProvider) DeleteUser(ctx context.Context, username string) error {
	if err := p.requireConfigured(); err != nil {
		return err
	}
	_, err := p.client.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(username),
	})
	if err != nil {
		if isUserNotFound(err) {
			return apperrors.NewNotFoundError("user")
		}
		return apperrors.NewExternalError("cognito", err)
	}
	return nil
}

// ListGroupsForUser returns the user's group names. Failures are logged and
// reported as no groups; group membership is display data on the callers
// that use this, never an authorization input.
func (p *CognitoProvider) ListGroupsForUser(ctx context.Context, username string) []string {
	out, err := p.client.AdminListGroupsForUser(ctx, &cognitoidentityprovider.AdminListGroupsForUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(username),
	})
	if err != nil {
		p.logger.Warn("failed to list groups for user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil
	}

	groups := make([]string, 0, len(out.Groups))
	for _, g := range out.Groups {
		groups = append(groups, aws.ToString(g.GroupName))
	}
	return groups
}

// ResetUserPassword initiates the provider's reset flow for the user.
func (p *CognitoProvider) ResetUserPassword(ctx context.Context, username string) error {
	if err := p.requireConfigured(); err != nil {
		return err
	}
	_, err := p.client.AdminResetUserPassword(ctx, &cognitoidentityprovider.AdminResetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(username),
	})
	if err != nil {
		if isUserNotFound(err) {
			return apperrors.NewNotFoundError("user")
		}
		return apperrors.NewExternalError("cognito", err)
	}
	return nil
}

func fromUserType(u types.UserType) *ports.IdentityUser {
	user := &ports.IdentityUser{
		Username: aws.ToString(u.Username),
		Status:   string(u.UserStatus),
		Enabled:  u.Enabled,
	}
	if u.UserCreateDate != nil {
		user.CreatedAt = u.UserCreateDate.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	if u.UserLastModifiedDate != nil {
		user.LastModifiedAt = u.UserLastModifiedDate.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	for _, attr := range u.Attributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			user.Sub = aws.ToString(attr.Value)
		case "email":
			user.Email = aws.ToString(attr.Value)
		case "email_verified":
			user.EmailVerified = aws.ToString(attr.Value) == "true"
		}
	}
	return user
}
