// Package firebase implements identity.Provider and identity.Verifier on
// Firebase Authentication.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
	"studio-admin/internal/identity"
)

type Client struct {
	auth *auth.Client
}

// New connects with the given service account file, or with application
// default credentials when credentialsFile is empty.
func New(ctx context.Context, projectID, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return &Client{auth: client}, nil
}

var (
	_ identity.Provider = (*Client)(nil)
	_ identity.Verifier = (*Client)(nil)
)

func (c *Client) CreateIdentity(ctx context.Context, id, email, secret, displayName string) (*identity.Record, error) {
	params := (&auth.UserToCreate{}).
		UID(id).
		Email(email).
		Password(secret).
		DisplayName(displayName)
	user, err := c.auth.CreateUser(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	return toRecord(user), nil
}

func (c *Client) UpdateProfile(ctx context.Context, id, displayName string) error {
	_, err := c.auth.UpdateUser(ctx, id, (&auth.UserToUpdate{}).DisplayName(displayName))
	return mapError(err)
}

func (c *Client) SetClaims(ctx context.Context, id string, claims map[string]any) error {
	return mapError(c.auth.SetCustomUserClaims(ctx, id, claims))
}

func (c *Client) DisableIdentity(ctx context.Context, id string, disabled bool) error {
	_, err := c.auth.UpdateUser(ctx, id, (&auth.UserToUpdate{}).Disabled(disabled))
	return mapError(err)
}

func (c *Client) DeleteIdentity(ctx context.Context, id string) error {
	return mapError(c.auth.DeleteUser(ctx, id))
}

func (c *Client) LookupByEmail(ctx context.Context, email string) (*identity.Record, error) {
	user, err := c.auth.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapError(err)
	}
	return toRecord(user), nil
}

func (c *Client) VerifyToken(ctx context.Context, token string) (*identity.Token, error) {
	verified, err := c.auth.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}
	email, _ := verified.Claims["email"].(string)
	name, _ := verified.Claims["name"].(string)
	return &identity.Token{
		UID:    verified.UID,
		Email:  email,
		Name:   name,
		Claims: verified.Claims,
	}, nil
}

func toRecord(user *auth.UserRecord) *identity.Record {
	record := &identity.Record{
		Disabled: user.Disabled,
		Claims:   user.CustomClaims,
	}
	if user.UserInfo != nil {
		record.UID = user.UID
		record.Email = user.Email
		record.DisplayName = user.DisplayName
	}
	return record
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if auth.IsUserNotFound(err) {
		return identity.ErrIdentityNotFound
	}
	return err
}
