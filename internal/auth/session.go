package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession means no live session exists for the user: logged out, expired,
// or superseded by a newer signin.
var ErrNoSession = errors.New("no active session")

// ErrSessionStoreUnavailable wraps transport failures talking to the store. It
// is kept distinct from ErrNoSession so an outage is never mistaken for a
// logged-out user.
var ErrSessionStoreUnavailable = errors.New("session store unavailable")

const sessionKeyPrefix = "session:"

// SessionStore tracks the single active refresh session per user in Redis.
// Writes are unconditional overwrites: a new signin or refresh supersedes the
// previous session (last-write-wins rotation).
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds a store whose records expire with the refresh token.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

// Put records refreshToken as the user's only live session.
func (s *SessionStore) Put(ctx context.Context, userID, refreshToken string) error {
	if err := s.client.Set(ctx, sessionKey(userID), refreshToken, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
	}
	return nil
}

// Get returns the currently live refresh token for the user, or ErrNoSession.
func (s *SessionStore) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
	}
	return val, nil
}

// Delete revokes the user's session. Deleting an absent session is not an
// error (logout is idempotent).
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
	}
	return nil
}
