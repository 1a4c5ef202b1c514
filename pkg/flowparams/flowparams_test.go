package flowparams_test

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-checkout/pkg/flowparams"
	"github.com/goliatone/go-checkout/pkg/tier"
)

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	return values
}

func TestParse(t *testing.T) {
	amount := func(v int64) *int64 { return &v }

	tests := []struct {
		name  string
		query string
		want  flowparams.Params
	}{
		{
			name:  "empty query",
			query: "",
			want:  flowparams.Params{Quantity: 1},
		},
		{
			name:  "amount in major units",
			query: "amount=50",
			want:  flowparams.Params{FixedAmount: amount(5000), Quantity: 1},
		},
		{
			name:  "totalAmount already minor",
			query: "totalAmount=5000",
			want:  flowparams.Params{FixedAmount: amount(5000), Quantity: 1},
		},
		{
			name:  "amount wins over totalAmount",
			query: "amount=50&totalAmount=9999",
			want:  flowparams.Params{FixedAmount: amount(5000), Quantity: 1},
		},
		{
			name:  "monthly normalises to month",
			query: "interval=monthly",
			want:  flowparams.Params{Interval: tier.IntervalMonth, Quantity: 1},
		},
		{
			name:  "yearly normalises to year",
			query: "interval=yearly",
			want:  flowparams.Params{Interval: tier.IntervalYear, Quantity: 1},
		},
		{
			name:  "unknown interval collapses to one-time",
			query: "interval=weekly",
			want:  flowparams.Params{Quantity: 1},
		},
		{
			name:  "quantity and tier",
			query: "quantity=3&tierId=42&tierSlug=backer",
			want:  flowparams.Params{Quantity: 3, TierID: 42, TierSlug: "backer"},
		},
		{
			name:  "invalid quantity keeps default",
			query: "quantity=zero",
			want:  flowparams.Params{Quantity: 1},
		},
		{
			name:  "step verb and tracking",
			query: "step=payment&verb=donate&redirect=https%3A%2F%2Fexample.com&referral=99&description=hi",
			want: flowparams.Params{
				Quantity:    1,
				Step:        "payment",
				Verb:        "donate",
				Redirect:    "https://example.com",
				Referral:    "99",
				Description: "hi",
			},
		},
		{
			name:  "data payload",
			query: `data=` + url.QueryEscape(`{"jersey":"XL"}`),
			want: flowparams.Params{
				Quantity:   1,
				CustomData: map[string]string{"jersey": "XL"},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := flowparams.Parse(mustParseQuery(t, tc.query), nil)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseInvalidDataIsLoggedAndDropped(t *testing.T) {
	var logged []string
	logf := func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	values := url.Values{"data": []string{"{not json"}}
	got := flowparams.Parse(values, logf)
	if got.CustomData != nil {
		t.Fatalf("expected the malformed payload to be dropped, got %+v", got.CustomData)
	}
	if len(logged) != 1 {
		t.Fatalf("expected one log entry, got %d", len(logged))
	}
}
