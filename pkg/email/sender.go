package email

import (
	"context"
	"errors"

	"github.com/ventaro/storefront/pkg/validator"
)

// Sender sends a single email.
type Sender interface {
	SendEmail(ctx context.Context, params SendParams) error
}

// SendParams describes one outgoing message.
type SendParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks that the message can be handed to a provider.
func (p SendParams) Validate() error {
	if err := validator.Apply(
		validator.RequiredString("SendTo", p.SendTo),
		validator.ValidEmail("SendTo", p.SendTo),
		validator.RequiredString("Subject", p.Subject),
		validator.RequiredString("BodyHTML", p.BodyHTML),
	); err != nil {
		return errors.Join(ErrInvalidParams, err)
	}
	return nil
}
