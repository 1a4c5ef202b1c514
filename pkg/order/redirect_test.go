package order_test

import (
	"testing"

	"github.com/goliatone/go-checkout/pkg/order"
)

func TestIsValidRedirect(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		production bool
		want       bool
	}{
		{name: "https with tld", raw: "https://example.com/thanks", production: true, want: true},
		{name: "http with tld", raw: "http://example.com", production: true, want: true},
		{name: "localhost in production", raw: "http://localhost:3000/cb", production: true, want: false},
		{name: "localhost in development", raw: "http://localhost:3000/cb", production: false, want: true},
		{name: "relative path", raw: "/thanks", production: false, want: false},
		{name: "javascript scheme", raw: "javascript:alert(1)", production: false, want: false},
		{name: "empty", raw: "", production: false, want: false},
		{name: "whitespace only", raw: "   ", production: true, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := order.IsValidRedirect(tc.raw, tc.production); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestBuildRedirectURL(t *testing.T) {
	res := order.Result{
		ID:           42,
		Status:       "PAID",
		Transactions: []order.Transaction{{ID: 7}},
	}

	got := order.BuildRedirectURL("https://example.com/cb?ref=x", res)
	want := "https://example.com/cb?orderId=42&ref=x&status=PAID&transactionid=7"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildRedirectURLNoTransactions(t *testing.T) {
	got := order.BuildRedirectURL("https://example.com/cb", order.Result{ID: 1, Status: "PENDING"})
	want := "https://example.com/cb?orderId=1&status=PENDING&transactionid=0"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
