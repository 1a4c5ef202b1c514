// Package payment models payment method selection: previously stored
// methods, and new cards whose details are exchanged lazily for a provider
// token.
package payment

import "context"

// Known payment services and method types.
const (
	ServiceStripe         = "stripe"
	ServicePaypal         = "paypal"
	ServiceOpenCollective = "opencollective"

	TypeCreditCard = "creditcard"
	TypeManual     = "manual"
)

// Method is a payment method reference carried in the order payload. Stored
// methods are identified by Reference; freshly tokenized cards carry Token
// and provider data instead.
type Method struct {
	Service   string
	Type      string
	Reference string
	Token     string
	Name      string
	Data      map[string]any
	Save      bool
}

// StoredReference strips a stored method down to the fields the backend
// needs to reuse it.
func (m Method) StoredReference() Method {
	return Method{Service: m.Service, Type: m.Type, Reference: m.Reference}
}

// Selection is the payment slice of the wizard state. New selections hold
// the raw card form data until it is exchanged for a token; stored methods
// are complete as-is.
type Selection struct {
	Method *Method
	New    bool
	// Card holds unexchanged card form data for new methods. It is cleared
	// once the token exchange succeeds.
	Card map[string]any
	Save bool
	Key  string
}

// Tokenized reports whether the selection needs no further provider calls
// before submission.
func (s *Selection) Tokenized() bool {
	if s == nil || s.Method == nil {
		return false
	}
	if !s.New {
		return true
	}
	return s.Card == nil && s.Method.Token != ""
}

// Token is the provider response from a card tokenization call.
type Token struct {
	ID   string
	Card map[string]any
}

// Tokenizer exchanges card details held by the provider's form widget for a
// token. It is an opaque external call: it either yields a token or an error
// with a user-facing message.
type Tokenizer interface {
	CreateToken(ctx context.Context) (Token, error)
}

// FromToken converts a provider token into a submittable method.
func FromToken(tok Token, save bool) Method {
	return Method{
		Service: ServiceStripe,
		Type:    TypeCreditCard,
		Token:   tok.ID,
		Data:    tok.Card,
		Save:    save,
	}
}
