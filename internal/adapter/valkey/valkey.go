// Package valkey keeps session data of the storefront in Valkey.
package valkey

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/niksmo/storefront/internal/core/port"
)

const (
	// DefaultTokenTTL is how long an idle authentication token is kept.
	DefaultTokenTTL = 30 * time.Minute

	tokenKeyPrefix = "storefront:token:"
	pingTimeout    = 5 * time.Second
)

var _ port.TokenStorage = (*TokenStorage)(nil)

// Connect creates a Valkey client and verifies the connection with a ping.
// A nil tlsConfig keeps the connection in plain text.
func Connect(ctx context.Context, addr, password string, db int, tlsConfig *tls.Config) (*redis.Client, error) {
	const op = "valkey.Connect"

	cl := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  password,
		DB:        db,
		TLSConfig: tlsConfig,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := cl.Ping(ctx).Err(); err != nil {
		cl.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("valkey connected", "op", op, "addr", addr)
	return cl, nil
}

// A TokenStorage keeps the authentication token of one storefront session.
// Reading the token extends its lifetime.
type TokenStorage struct {
	cl  redis.Cmdable
	key string
	ttl time.Duration
}

func NewTokenStorage(cl redis.Cmdable, sessionID string, ttl time.Duration) *TokenStorage {
	if cl == nil {
		panic("valkey.NewTokenStorage: client is nil") // develop mistake
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenStorage{
		cl:  cl,
		key: tokenKeyPrefix + sessionID,
		ttl: ttl,
	}
}

// Token returns the stored token or an empty string for anonymous sessions.
func (s *TokenStorage) Token(ctx context.Context) (string, error) {
	const op = "TokenStorage.Token"

	token, err := s.cl.GetEx(ctx, s.key, s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

func (s *TokenStorage) SetToken(ctx context.Context, token string) error {
	const op = "TokenStorage.SetToken"

	if err := s.cl.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *TokenStorage) DeleteToken(ctx context.Context) error {
	const op = "TokenStorage.DeleteToken"

	if err := s.cl.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
