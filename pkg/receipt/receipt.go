// Package receipt renders the user-facing order confirmation texts: the
// contribution breakdown and the bank-transfer instructions for manual
// payment methods.
package receipt

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-checkout/pkg/order"
	"github.com/goliatone/go-checkout/pkg/tax"
	"github.com/goliatone/go-checkout/pkg/tier"
)

const manualInstructionsSource = `Instructions to make the payment of {{ amount }} will be sent to your email address {{ email }}. Your order will be pending until the funds have been received by the host ({{ host }}).`

var (
	manualOnce sync.Once
	manualTpl  *pongo2.Template
	manualErr  error
)

func manualTemplate() (*pongo2.Template, error) {
	manualOnce.Do(func() {
		manualTpl, manualErr = pongo2.FromString(manualInstructionsSource)
	})
	return manualTpl, manualErr
}

// FormatCurrency renders a minor-unit amount with its currency code, e.g.
// "$50.00 USD" becomes "50.00 USD". Display-layer symbol selection is out of
// scope here.
func FormatCurrency(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, strings.ToUpper(currency))
}

// ManualInstructions renders the pending-payment notice shown after a
// bank-transfer order.
func ManualInstructions(amount int64, currency, email, host string) (string, error) {
	tpl, err := manualTemplate()
	if err != nil {
		return "", fmt.Errorf("receipt: parse instructions template: %w", err)
	}
	out, err := tpl.Execute(pongo2.Context{
		"amount": FormatCurrency(amount, currency),
		"email":  email,
		"host":   host,
	})
	if err != nil {
		return "", fmt.Errorf("receipt: render instructions: %w", err)
	}
	return out, nil
}

// Breakdown is the line-item view of a submitted order.
type Breakdown struct {
	Description string
	Quantity    int
	Amount      string
	TaxAmount   string
	Total       string
	Interval    tier.Interval
	OrderID     int64
	Status      string
}

// NewBreakdown assembles the breakdown from the submitted request and the
// backend result.
func NewBreakdown(req order.Request, res order.Result, summary *tax.Summary) Breakdown {
	unit := req.TotalAmount - req.TaxAmount
	if req.Quantity > 1 {
		unit = unit / int64(req.Quantity)
	}
	b := Breakdown{
		Description: req.Description,
		Quantity:    req.Quantity,
		Amount:      FormatCurrency(unit, req.Currency),
		Total:       FormatCurrency(req.TotalAmount, req.Currency),
		Interval:    req.Interval,
		OrderID:     res.ID,
		Status:      res.Status,
	}
	if summary != nil && summary.Amount > 0 {
		b.TaxAmount = FormatCurrency(summary.Amount, req.Currency)
	}
	return b
}

// Render writes the breakdown as plain text, one line per populated item.
func (b Breakdown) Render() string {
	var sb strings.Builder
	if b.Description != "" {
		fmt.Fprintf(&sb, "%s\n", b.Description)
	}
	if b.Quantity > 1 {
		fmt.Fprintf(&sb, "%d x %s\n", b.Quantity, b.Amount)
	}
	if b.TaxAmount != "" {
		fmt.Fprintf(&sb, "VAT: %s\n", b.TaxAmount)
	}
	total := b.Total
	if b.Interval != tier.IntervalOneTime {
		total = fmt.Sprintf("%s / %s", total, b.Interval)
	}
	fmt.Fprintf(&sb, "Total: %s\n", total)
	if b.OrderID != 0 {
		fmt.Fprintf(&sb, "Order #%d (%s)\n", b.OrderID, b.Status)
	}
	return sb.String()
}
