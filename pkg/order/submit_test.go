package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-checkout/pkg/order"
	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/profile"
	"github.com/goliatone/go-checkout/pkg/verification"
)

type stubBackend struct {
	lastRequest order.Request
	result      order.Result
	err         error
}

func (b *stubBackend) CreateOrder(_ context.Context, req order.Request) (order.Result, error) {
	b.lastRequest = req
	return b.result, b.err
}

func (b *stubBackend) CreateCollective(_ context.Context, draft profile.Profile) (profile.Profile, error) {
	return draft, nil
}

type stubProvider struct {
	token    string
	readyErr error
	execErr  error
	closed   bool
}

func (p *stubProvider) Ready(context.Context) error { return p.readyErr }
func (p *stubProvider) Execute(context.Context, string, string) (string, error) {
	return p.token, p.execErr
}
func (p *stubProvider) Close() error {
	p.closed = true
	return nil
}

func TestSubmitWithoutVerification(t *testing.T) {
	backend := &stubBackend{result: order.Result{ID: 1, Status: "PAID"}}
	s, err := order.NewSubmitter(backend, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, warning, err := s.Submit(context.Background(), order.Request{TotalAmount: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warning != "" {
		t.Fatalf("expected no warning, got %q", warning)
	}
	if res.ID != 1 {
		t.Fatalf("expected order 1, got %d", res.ID)
	}
	if backend.lastRequest.VerificationToken != "" {
		t.Fatalf("expected no verification token, got %q", backend.lastRequest.VerificationToken)
	}
}

func TestSubmitFillsVerificationToken(t *testing.T) {
	backend := &stubBackend{result: order.Result{ID: 1}}
	tokens := verification.NewTokenSource(&stubProvider{token: "tok-1"}, "site-key")
	s, err := order.NewSubmitter(backend, tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := s.Submit(context.Background(), order.Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.lastRequest.VerificationToken != "tok-1" {
		t.Fatalf("expected token tok-1, got %q", backend.lastRequest.VerificationToken)
	}
}

func TestSubmitEmptyTokenWarnsButProceeds(t *testing.T) {
	backend := &stubBackend{result: order.Result{ID: 1}}
	tokens := verification.NewTokenSource(&stubProvider{token: ""}, "site-key")
	s, _ := order.NewSubmitter(backend, tokens)

	res, warning, err := s.Submit(context.Background(), order.Request{})
	if err != nil {
		t.Fatalf("expected submission to proceed, got %v", err)
	}
	if warning == "" {
		t.Fatal("expected a warning for the empty token")
	}
	if res.ID != 1 {
		t.Fatalf("expected order 1, got %d", res.ID)
	}
}

func TestSubmitAbortsWhenVerificationFails(t *testing.T) {
	backend := &stubBackend{}
	tokens := verification.NewTokenSource(&stubProvider{readyErr: errors.New("blocked")}, "site-key")
	s, _ := order.NewSubmitter(backend, tokens)

	_, _, err := s.Submit(context.Background(), order.Request{})
	if !errors.Is(err, order.ErrVerificationUnavailable) {
		t.Fatalf("expected ErrVerificationUnavailable, got %v", err)
	}
	if backend.lastRequest.TotalAmount != 0 && backend.lastRequest.Quantity != 0 {
		t.Fatal("expected the create-order call to be skipped")
	}
}

func TestSubmitWrapsBackendError(t *testing.T) {
	backend := &stubBackend{err: errors.New("GraphQL error: insufficient funds")}
	s, _ := order.NewSubmitter(backend, nil)

	_, _, err := s.Submit(context.Background(), order.Request{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := err.Error(); got != "order: create order: GraphQL error: insufficient funds" {
		t.Fatalf("unexpected error text: %q", got)
	}
}

func TestResolvePaymentMethod(t *testing.T) {
	stored := &payment.Selection{
		Method: &payment.Method{Service: payment.ServiceStripe, Type: payment.TypeCreditCard, Reference: "pm_1", Name: "visa"},
	}

	got := order.ResolvePaymentMethod(stored, nil)
	if got == nil || got.Reference != "pm_1" || got.Name != "" {
		t.Fatalf("expected the stored method stripped to its reference, got %+v", got)
	}

	override := &payment.Method{Type: payment.TypeManual}
	if got := order.ResolvePaymentMethod(stored, override); got != override {
		t.Fatal("expected the override to win")
	}

	if got := order.ResolvePaymentMethod(nil, nil); got != nil {
		t.Fatalf("expected nil for no selection, got %+v", got)
	}

	fresh := &payment.Selection{
		New:    true,
		Method: &payment.Method{Service: payment.ServiceStripe, Type: payment.TypeCreditCard, Token: "tok_1"},
	}
	if got := order.ResolvePaymentMethod(fresh, nil); got == nil || got.Token != "tok_1" {
		t.Fatalf("expected the tokenized method passed through, got %+v", got)
	}
}
