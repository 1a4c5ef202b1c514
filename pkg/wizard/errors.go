package wizard

import (
	"errors"
	"strings"
)

// Sentinel errors surfaced by navigation and validation. Their messages are
// user-facing once the package prefix is stripped.
var (
	// ErrNavigationInFlight is returned when Next/Back arrive while a
	// validation or submission is still running. The request is ignored, not
	// queued.
	ErrNavigationInFlight = errors.New("wizard: navigation already in progress")

	ErrProfileRequired       = errors.New("wizard: please select a profile")
	ErrDetailsRequired       = errors.New("wizard: please set the contribution details")
	ErrPaymentMethodRequired = errors.New("wizard: please set a payment method")
	ErrPaymentFormNotReady   = errors.New("wizard: there was a problem initializing the payment form, reload the page and try again")
	ErrStepNotReachable      = errors.New("wizard: step has not been reached yet")
)

// userMessage strips internal error-source prefixes so the flow-level
// message shown to the user does not leak transport details.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{"order: create order: ", "wizard: create profile: ", "wizard: ", "order: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	// The transport prefix can sit behind wrap text, so strip it anywhere.
	msg = strings.Replace(msg, "GraphQL error: ", "", 1)
	return msg
}
