package domain

import (
	"strings"

	"github.com/pkg/errors"
)

// Card holds the details submitted for authorization
type Card struct {
	Number     string
	Holder     string
	Expiration string
}

// NewCard validates the submitted card details
func NewCard(number, holder, expiration string) (*Card, error) {
	if number == "" || holder == "" || expiration == "" {
		return nil, errors.New("card number, holder and expiration are required")
	}

	return &Card{
		Number:     strings.TrimSpace(number),
		Holder:     holder,
		Expiration: expiration,
	}, nil
}

// Approved reports whether the issuer authorizes the card. Only cards
// on the 4-prefix network are accepted.
func (c *Card) Approved() bool {
	return strings.HasPrefix(c.Number, "4")
}
