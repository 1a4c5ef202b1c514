// Package verification integrates the optional anti-abuse provider. The
// token is fetched at most once per flow instance; concurrent fetches are
// deduplicated and the resolved value is cached for the life of the source.
package verification

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ActionOrderForm tags token requests issued by the checkout flow.
const ActionOrderForm = "OrderForm"

// ErrConnect is the user-facing message when the provider cannot be reached.
const ErrConnectMessage = "can't connect to the verification service, reload the page or disable your ad blocker"

// Provider is the external anti-abuse integration. Close must release any
// session resources when the flow unmounts.
type Provider interface {
	Ready(ctx context.Context) error
	Execute(ctx context.Context, siteKey, action string) (string, error)
	Close() error
}

// TokenSource fetches and caches the verification token. Only a successful
// fetch is cached; failures may be retried by the next submission attempt.
type TokenSource struct {
	provider Provider
	siteKey  string

	group   singleflight.Group
	mu      sync.Mutex
	token   string
	fetched bool
	closed  bool
}

// NewTokenSource wraps the provider. A nil provider yields a nil source,
// which callers treat as verification disabled.
func NewTokenSource(provider Provider, siteKey string) *TokenSource {
	if provider == nil {
		return nil
	}
	return &TokenSource{provider: provider, siteKey: siteKey}
}

// Token returns the cached token or performs the ready/execute sequence.
// Concurrent callers share a single in-flight fetch.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", fmt.Errorf("verification: token source is closed")
	}
	if s.fetched {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	s.mu.Unlock()

	value, err, _ := s.group.Do("token", func() (any, error) {
		// Re-check under the group: a caller that lost the race to a completed
		// fetch must not trigger a second one.
		s.mu.Lock()
		if s.fetched {
			token := s.token
			s.mu.Unlock()
			return token, nil
		}
		s.mu.Unlock()

		if err := s.provider.Ready(ctx); err != nil {
			return "", fmt.Errorf("verification: provider not ready: %w", err)
		}
		token, err := s.provider.Execute(ctx, s.siteKey, ActionOrderForm)
		if err != nil {
			return "", fmt.Errorf("verification: execute: %w", err)
		}
		return token, nil
	})
	if err != nil {
		return "", err
	}

	token, _ := value.(string)
	s.mu.Lock()
	if !s.fetched {
		s.token = token
		s.fetched = true
	}
	token = s.token
	s.mu.Unlock()
	return token, nil
}

// Close tears down the provider integration. Safe to call more than once.
func (s *TokenSource) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.provider.Close()
}
