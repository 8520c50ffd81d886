package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestStore_SaveAndToken(t *testing.T) {
	store := NewStore(NewMemoryKV())
	ctx := context.Background()

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("opaque-token"))
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", token)

	require.NoError(t, store.Clear())
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStore_SaveEmpty(t *testing.T) {
	assert.Error(t, NewStore(NewMemoryKV()).Save(""))
}

func TestStore_ExpiredToken(t *testing.T) {
	store := NewStore(NewMemoryKV())
	expired := signToken(t, Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	require.NoError(t, store.Save(expired))

	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, store.UserID(context.Background()))
}

func TestStore_Current(t *testing.T) {
	store := NewStore(NewMemoryKV())
	_, err := store.Current(context.Background())
	assert.True(t, errors.Is(err, ErrNoSession))

	token := signToken(t, Claims{
		UserID: "u-1",
		Email:  "cook@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, store.Save(token))

	claims, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "cook@example.com", claims.Email)
	assert.Equal(t, "u-1", store.UserID(context.Background()))
}

func TestStore_CancelledContext(t *testing.T) {
	store := NewStore(NewMemoryKV())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Token(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse(t *testing.T) {
	token := signToken(t, jwt.RegisteredClaims{Subject: "u-2"})
	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-2", claims.UserID, "subject is the fallback user id")
	assert.False(t, claims.Expired(time.Now()))

	_, err = Parse("not-a-jwt")
	assert.Error(t, err)
}

func TestClaims_Expired(t *testing.T) {
	now := time.Now()
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}}
	assert.True(t, c.Expired(now))

	c.ExpiresAt = jwt.NewNumericDate(now.Add(time.Minute))
	assert.False(t, c.Expired(now))
}
