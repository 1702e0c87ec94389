package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("open sesame", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "open sesame", hash)

	ok, err := CheckPassword(hash, "open sesame")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "open sesame!")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-hash", "x")
	assert.Error(t, err)
}

func TestIssuerAndLocalVerifier(t *testing.T) {
	_, err := NewIssuer("", "iss", time.Hour)
	require.Error(t, err)

	issuer, err := NewIssuer("s3cret", "hotel-booking-api", 0)
	require.NoError(t, err)

	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }
	tok, err := issuer.Issue(12, 34, "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultTokenTTL), tok.ExpiresAt)

	// issued on a fixed date long ago, so it has expired
	_, err = NewLocalVerifier("s3cret", "hotel-booking-api").Verify(context.Background(), tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuer.now = time.Now
	tok, err = issuer.Issue(12, 34, "guest@example.com")
	require.NoError(t, err)

	claims, err := NewLocalVerifier("s3cret", "hotel-booking-api").Verify(context.Background(), tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "12", claims.Subject())
	assert.Equal(t, "guest@example.com", claims["email"])
	assert.EqualValues(t, 34, claims["customer_id"])

	tests := []struct {
		name     string
		verifier *LocalVerifier
	}{
		{"wrong secret", NewLocalVerifier("other", "hotel-booking-api")},
		{"wrong issuer", NewLocalVerifier("s3cret", "someone-else")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verifier.Verify(context.Background(), tok.Token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestLocalVerifierRejectsTokenWithoutExpiry(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "iss": "iss"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewLocalVerifier("k", "iss").Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func rsaKeyPEM(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func TestExternalVerifier(t *testing.T) {
	key, pub := rsaKeyPEM(t)

	_, err := NewExternalVerifier("garbage", "", "")
	require.Error(t, err)

	v, err := NewExternalVerifier(pub, "https://idp.example.com/", "hotel-api")
	require.NoError(t, err)

	sign := func(claims jwt.MapClaims) string {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
		require.NoError(t, err)
		return raw
	}
	exp := time.Now().Add(time.Hour).Unix()

	claims, err := v.Verify(context.Background(), sign(jwt.MapClaims{
		"sub": "auth0|abc", "iss": "https://idp.example.com/", "aud": "hotel-api", "exp": exp,
	}))
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc", claims.Subject())

	_, err = v.Verify(context.Background(), sign(jwt.MapClaims{
		"sub": "auth0|abc", "iss": "https://idp.example.com/", "aud": "another-api", "exp": exp,
	}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "x", "iss": "https://idp.example.com/", "aud": "hotel-api", "exp": exp,
	}).SignedString([]byte(pub))
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), hs)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
