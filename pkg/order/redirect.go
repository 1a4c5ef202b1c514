package order

import (
	"net/url"
	"strconv"
	"strings"
)

// IsValidRedirect reports whether raw is an absolute http(s) URL we are
// willing to send the user to after submission. In production the host must
// carry a TLD; outside production TLD-less hosts such as localhost are
// accepted.
func IsValidRedirect(raw string, production bool) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	host := parsed.Hostname()
	if host == "" {
		return false
	}
	if production && !strings.Contains(host, ".") {
		return false
	}
	return true
}

// BuildRedirectURL appends the order id, first transaction id, and status to
// the redirect target as query parameters.
func BuildRedirectURL(base string, res Result) string {
	parsed, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return base
	}
	query := parsed.Query()
	query.Set("orderId", strconv.FormatInt(res.ID, 10))
	query.Set("transactionid", strconv.FormatInt(res.FirstTransactionID(), 10))
	query.Set("status", res.Status)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
