package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// Tokens is the result of an authorization code exchange
type Tokens struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
}

// OAuthClient drives the Cognito hosted UI authorization code flow
type OAuthClient struct {
	config   *oauth2.Config
	domain   string
	clientID string
}

// NewOAuthClient configures the flow for a hosted UI domain. A bare domain is
// served over https.
func NewOAuthClient(domain, clientID, clientSecret, redirectURI string, scopes []string) *OAuthClient {
	base := strings.TrimRight(domain, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	return &OAuthClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/oauth2/authorize",
				TokenURL:  base + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		domain:   base,
		clientID: clientID,
	}
}

// LoginURL is the hosted UI page that starts the flow
func (c *OAuthClient) LoginURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// LogoutURL signs the user out of the hosted UI and returns them to redirect
func (c *OAuthClient) LogoutURL(redirect string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("logout_uri", redirect)
	return c.domain + "/logout?" + q.Encode()
}

// Exchange trades an authorization code for tokens
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*Tokens, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		return nil, errors.New("token response has no id_token")
	}

	return &Tokens{
		IDToken:      idToken,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}
