package receipt_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-checkout/pkg/order"
	"github.com/goliatone/go-checkout/pkg/receipt"
	"github.com/goliatone/go-checkout/pkg/tier"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{5000, "USD", "50.00 USD"},
		{5, "eur", "0.05 EUR"},
		{123456, "GBP", "1234.56 GBP"},
		{-250, "USD", "-2.50 USD"},
		{0, "USD", "0.00 USD"},
	}
	for _, tc := range tests {
		if got := receipt.FormatCurrency(tc.amount, tc.currency); got != tc.want {
			t.Fatalf("FormatCurrency(%d, %q): expected %q, got %q", tc.amount, tc.currency, tc.want, got)
		}
	}
}

func TestManualInstructions(t *testing.T) {
	got, err := receipt.ManualInstructions(5000, "USD", "jo@example.com", "Open Source Host")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Instructions to make the payment of 50.00 USD will be sent to your email address jo@example.com. Your order will be pending until the funds have been received by the host (Open Source Host)."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNewBreakdown(t *testing.T) {
	req := order.Request{
		Description: "Conference ticket",
		Quantity:    2,
		TotalAmount: 4400,
		TaxAmount:   400,
		Currency:    "EUR",
	}
	res := order.Result{ID: 42, Status: "PAID"}

	got := receipt.NewBreakdown(req, res, nil)
	if got.Amount != "20.00 EUR" {
		t.Fatalf("expected unit amount 20.00 EUR, got %q", got.Amount)
	}
	if got.Total != "44.00 EUR" {
		t.Fatalf("expected total 44.00 EUR, got %q", got.Total)
	}
	if got.TaxAmount != "" {
		t.Fatalf("expected no tax line without a summary, got %q", got.TaxAmount)
	}
	if got.OrderID != 42 || got.Status != "PAID" {
		t.Fatalf("unexpected order fields: %+v", got)
	}
}

func TestBreakdownRender(t *testing.T) {
	b := receipt.Breakdown{
		Description: "Monthly backer",
		Quantity:    1,
		Total:       "5.00 USD",
		Interval:    tier.IntervalMonth,
		OrderID:     7,
		Status:      "ACTIVE",
	}

	out := b.Render()
	for _, want := range []string{"Monthly backer", "Total: 5.00 USD / month", "Order #7 (ACTIVE)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "VAT") {
		t.Fatalf("expected no tax line, got:\n%s", out)
	}
}
