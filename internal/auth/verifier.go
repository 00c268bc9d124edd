package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenUseID     = "id"
	tokenUseAccess = "access"
)

var ErrInvalidToken = errors.New("invalid token")

// User is the authenticated caller
type User struct {
	UserID   string   `json:"user_id"`
	Email    string   `json:"email,omitempty"`
	Username string   `json:"username,omitempty"`
	Name     string   `json:"name,omitempty"`
	Groups   []string `json:"groups"`
}

func (u *User) HasGroup(group string) bool {
	for _, g := range u.Groups {
		if g == group {
			return true
		}
	}
	return false
}

type cognitoClaims struct {
	jwt.RegisteredClaims
	TokenUse       string   `json:"token_use"`
	ClientID       string   `json:"client_id"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	CognitoUser    string   `json:"cognito:username"`
	AccessUsername string   `json:"username"`
	Groups         []string `json:"cognito:groups"`
}

// CognitoIssuer is the issuer of tokens minted by a Cognito user pool
func CognitoIssuer(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}

// JWKSURL is where an issuer publishes its signing keys
func JWKSURL(issuer string) string {
	return issuer + "/.well-known/jwks.json"
}

// Verifier validates RS256 Cognito ID and access tokens
type Verifier struct {
	keys     *KeySet
	issuer   string
	clientID string
}

func NewVerifier(keys *KeySet, issuer, clientID string) *Verifier {
	return &Verifier{
		keys:     keys,
		issuer:   issuer,
		clientID: clientID,
	}
}

// Verify checks signature, expiry, issuer and client of token and returns its user.
// ID tokens carry the client in aud, access tokens in client_id.
func (v *Verifier) Verify(ctx context.Context, token string) (*User, error) {
	claims := &cognitoClaims{}

	keyfunc := v.keys.Keyfunc(ctx)
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if kid, _ := t.Header["kid"].(string); kid == "" {
			return nil, errors.New("missing kid header")
		}
		return keyfunc(t)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	switch claims.TokenUse {
	case tokenUseAccess:
		if claims.ClientID != v.clientID {
			return nil, fmt.Errorf("%w: client_id mismatch", ErrInvalidToken)
		}
	default:
		if !audienceContains(claims.Audience, v.clientID) {
			return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
		}
	}

	user := &User{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Username: claims.CognitoUser,
		Name:     claims.Name,
		Groups:   claims.Groups,
	}
	if user.Username == "" {
		user.Username = claims.AccessUsername
	}
	if user.Groups == nil {
		user.Groups = []string{}
	}
	return user, nil
}

func audienceContains(audience jwt.ClaimStrings, clientID string) bool {
	for _, aud := range audience {
		if aud == clientID {
			return true
		}
	}
	return false
}
