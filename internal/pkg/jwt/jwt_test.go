package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-32-bytes-long-xxxxx"

var issuedAt = time.Unix(1_900_000_000, 0)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager(testSecret, "learnhub", 15*time.Minute).WithClock(fixedClock(issuedAt))

	token, exp, err := m.GenerateAccessToken(42)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(15*time.Minute), exp)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "learnhub", claims.Issuer)
}

func TestManager_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	issuer := NewManager(testSecret, "learnhub", time.Hour).WithClock(fixedClock(issuedAt))
	token, exp, err := issuer.GenerateAccessToken(7)
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"well before expiry", exp.Add(-30 * time.Minute), nil},
		{"one nanosecond before expiry", exp.Add(-time.Nanosecond), nil},
		{"exactly at expiry", exp, ErrTokenExpired},
		{"after expiry", exp.Add(time.Second), ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.WithClock(fixedClock(tt.at)).ValidateAccessToken(token)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManager_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	m := NewManager(testSecret, "learnhub", time.Hour).WithClock(fixedClock(issuedAt))

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
		tok := jwt.NewWithClaims(method, claims)
		signed, err := tok.SignedString(key)
		require.NoError(t, err)
		return signed
	}
	valid := jwt.MapClaims{"sub": "1", "exp": issuedAt.Add(time.Hour).Unix()}

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.valid.jwt.token"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other-secret"), valid)},
		{"RS256 signed", sign(jwt.SigningMethodRS256, rsaKey, valid)},
		{"missing expiry", sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "1"})},
		{"non numeric subject", sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "abc", "exp": issuedAt.Add(time.Hour).Unix()})},
		{"zero subject", sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "0", "exp": issuedAt.Add(time.Hour).Unix()})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestManager_ExpiredWithWrongSecretIsInvalid(t *testing.T) {
	t.Parallel()

	other := NewManager("other-secret", "learnhub", time.Minute).WithClock(fixedClock(issuedAt))
	token, _, err := other.GenerateAccessToken(1)
	require.NoError(t, err)

	m := NewManager(testSecret, "learnhub", time.Minute).WithClock(fixedClock(issuedAt.Add(time.Hour)))
	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
