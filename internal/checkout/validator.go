package checkout

import (
	"errors"
	"strings"
)

// ErrInvalidForm is the single aggregated validation failure: the
// storefront reports one message when any required field is missing,
// not a per-field list.
var ErrInvalidForm = errors.New("checkout: please fill in all required fields")

// Validate checks the contact form and produces a validated intent with
// trimmed fields. Name, email, phone and city are required; the address
// is required only for courier delivery and ignored for pickup. Pure
// and idempotent.
func Validate(form ContactForm) (Intent, error) {
	intent := Intent{
		Name:         strings.TrimSpace(form.Name),
		Email:        strings.TrimSpace(form.Email),
		Phone:        strings.TrimSpace(form.Phone),
		City:         strings.TrimSpace(form.City),
		DeliveryType: form.DeliveryType,
		Address:      strings.TrimSpace(form.Address),
		Comments:     strings.TrimSpace(form.Comments),
	}

	if intent.DeliveryType == "" {
		intent.DeliveryType = DeliveryPickup
	}

	if intent.Name == "" || intent.Email == "" || intent.Phone == "" || intent.City == "" {
		return Intent{}, ErrInvalidForm
	}

	if intent.DeliveryType == DeliveryCourier && intent.Address == "" {
		return Intent{}, ErrInvalidForm
	}

	if intent.DeliveryType != DeliveryCourier {
		// Для самовывоза адрес не имеет значения, что бы в нём ни было.
		intent.Address = ""
	}

	return intent, nil
}
