// Package session keeps the signed-in user's token.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenKey = "token"

// ErrNoSession is returned when nothing is stored.
var ErrNoSession = errors.New("not signed in")

// KV is the key/value table the token lives in.
type KV interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
}

type Store struct {
	kv  KV
	now func() time.Time
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Token returns the stored token, or "" when signed out. Expired tokens
// are treated as absent.
func (s *Store) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token, err := s.kv.GetValue(tokenKey)
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	if token == "" {
		return "", nil
	}
	if claims, err := Parse(token); err == nil && claims.Expired(s.now()) {
		return "", nil
	}
	return token, nil
}

func (s *Store) Save(token string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if err := s.kv.SetValue(tokenKey, token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) Clear() error {
	if err := s.kv.DeleteValue(tokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the claims of the stored token.
func (s *Store) Current(ctx context.Context) (*Claims, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoSession
	}
	return Parse(token)
}

// UserID returns the signed-in user's id, or "" when signed out.
func (s *Store) UserID(ctx context.Context) string {
	claims, err := s.Current(ctx)
	if err != nil {
		return ""
	}
	return claims.UserID
}

// Claims are the fields the client reads from the backend's token. The
// signature is the backend's business; the client never verifies it.
type Claims struct {
	UserID  string `json:"_id"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Expired reports whether the token carries an expiry that has passed.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

func Parse(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

// MemoryKV is an in-process KV used by tests and one-shot commands.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) GetValue(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryKV) SetValue(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) DeleteValue(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
