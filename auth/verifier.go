package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified claims of a bearer token.
type Claims map[string]interface{}

// Subject returns the "sub" claim or an empty string.
func (c Claims) Subject() string {
	if s, ok := c["sub"].(string); ok {
		return s
	}
	return ""
}

// TokenVerifier verifies a bearer token and yields its subject claims.
// Deployments wire exactly one implementation.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (Claims, error)
}

// LocalVerifier accepts HS256 tokens signed by Issuer.
type LocalVerifier struct {
	secret []byte
	issuer string
}

func NewLocalVerifier(secret, issuer string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *LocalVerifier) Verify(_ context.Context, raw string) (Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	return parse(raw, func(*jwt.Token) (interface{}, error) { return v.secret, nil }, opts...)
}

// ExternalVerifier accepts RS256 tokens minted by a delegated identity
// provider, checked against its public key, issuer and audience.
type ExternalVerifier struct {
	key      *rsa.PublicKey
	issuer   string
	audience string
}

func NewExternalVerifier(publicKeyPEM, issuer, audience string) (*ExternalVerifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse identity provider public key: %w", err)
	}
	return &ExternalVerifier{key: key, issuer: issuer, audience: audience}, nil
}

func (v *ExternalVerifier) Verify(_ context.Context, raw string) (Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	return parse(raw, func(*jwt.Token) (interface{}, error) { return v.key, nil }, opts...)
}

func parse(raw string, keyFunc jwt.Keyfunc, opts ...jwt.ParserOption) (Claims, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, keyFunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return Claims(claims), nil
}
