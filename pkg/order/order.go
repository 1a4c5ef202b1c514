// Package order assembles and submits the final contribution order from the
// partial state fragments accumulated across the wizard steps.
package order

import (
	"context"

	"github.com/goliatone/go-checkout/pkg/payment"
	"github.com/goliatone/go-checkout/pkg/profile"
	"github.com/goliatone/go-checkout/pkg/tier"
)

// AccountRef identifies the contributing identity, stripped to the fields
// the backend accepts.
type AccountRef struct {
	ID   int64  `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
}

// CollectiveRef identifies the target collective.
type CollectiveRef struct {
	ID int64 `json:"id"`
}

// TierRef references the ordered tier along with its configured amount.
type TierRef struct {
	ID     int64  `json:"id"`
	Amount *int64 `json:"amount,omitempty"`
}

// Request is the create-order payload. Amounts are minor currency units.
type Request struct {
	PaymentMethod     *payment.Method   `json:"paymentMethod,omitempty"`
	VerificationToken string            `json:"recaptchaToken,omitempty"`
	TotalAmount       int64             `json:"totalAmount"`
	TaxAmount         int64             `json:"taxAmount"`
	CountryISO        string            `json:"countryISO,omitempty"`
	TaxIDNumber       string            `json:"taxIDNumber,omitempty"`
	Quantity          int               `json:"quantity"`
	Currency          string            `json:"currency"`
	Interval          tier.Interval     `json:"interval,omitempty"`
	Referral          string            `json:"referral,omitempty"`
	FromCollective    AccountRef        `json:"fromCollective"`
	Collective        CollectiveRef     `json:"collective"`
	Tier              *TierRef          `json:"tier,omitempty"`
	Description       string            `json:"description"`
	CustomData        map[string]string `json:"customData,omitempty"`
}

// Transaction is a settled transaction attached to a created order.
type Transaction struct {
	ID int64 `json:"id"`
}

// Result is the backend response to a create-order call.
type Result struct {
	ID           int64         `json:"id"`
	Status       string        `json:"status"`
	Transactions []Transaction `json:"transactions"`
}

// FirstTransactionID returns the id of the first transaction, or zero when
// none settled yet.
func (r Result) FirstTransactionID() int64 {
	if len(r.Transactions) == 0 {
		return 0
	}
	return r.Transactions[0].ID
}

// Backend is the external create-order / create-collective surface. The core
// depends on these contracts only; transport is the caller's concern.
type Backend interface {
	CreateOrder(ctx context.Context, req Request) (Result, error)
	CreateCollective(ctx context.Context, draft profile.Profile) (profile.Profile, error)
}

// ResolvePaymentMethod picks the method for submission: an explicit override
// wins, otherwise the selection's method is used — stripped down to its
// stored reference when reusing an existing method, passed through when
// freshly tokenized.
func ResolvePaymentMethod(sel *payment.Selection, override *payment.Method) *payment.Method {
	if override != nil {
		return override
	}
	if sel == nil || sel.Method == nil {
		return nil
	}
	if !sel.New {
		stripped := sel.Method.StoredReference()
		return &stripped
	}
	method := *sel.Method
	return &method
}
