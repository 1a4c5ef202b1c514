package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-checkout/pkg/verification"
)

// ErrVerificationUnavailable wraps failures to obtain the anti-abuse token.
// It aborts submission; an empty-but-successful token does not.
var ErrVerificationUnavailable = errors.New(verification.ErrConnectMessage)

// Submitter performs the create-order call, acquiring the anti-abuse token
// first when verification is enabled.
type Submitter struct {
	backend Backend
	tokens  *verification.TokenSource
}

// NewSubmitter wires the backend and the optional token source. A nil token
// source disables verification.
func NewSubmitter(backend Backend, tokens *verification.TokenSource) (*Submitter, error) {
	if backend == nil {
		return nil, errors.New("order: backend is required")
	}
	return &Submitter{backend: backend, tokens: tokens}, nil
}

// Submit fills the verification token and executes the create-order call.
// The returned warning is non-empty when the provider handed back an empty
// token; the submission still proceeds and the server makes the final call.
func (s *Submitter) Submit(ctx context.Context, req Request) (Result, string, error) {
	warning := ""
	if s.tokens != nil {
		token, err := s.tokens.Token(ctx)
		if err != nil {
			return Result{}, "", fmt.Errorf("%w: %w", ErrVerificationUnavailable, err)
		}
		if token == "" {
			warning = verification.ErrConnectMessage
		}
		req.VerificationToken = token
	}

	res, err := s.backend.CreateOrder(ctx, req)
	if err != nil {
		return Result{}, warning, fmt.Errorf("order: create order: %w", err)
	}
	return res, warning, nil
}
