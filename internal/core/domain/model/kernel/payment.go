package kernel

import (
	"strings"

	"marketplace/internal/pkg/errs"
)

const maxPaymentMethodLength = 50

// PaymentMethod is the label of the payment method chosen at checkout ("cod", "upi", ...).
// It is recorded, never processed.
type PaymentMethod struct {
	label string
}

func NewPaymentMethod(label string) (PaymentMethod, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return PaymentMethod{}, errs.NewValueIsRequiredError("paymentMethod")
	}
	if len(label) > maxPaymentMethodLength {
		return PaymentMethod{}, errs.NewValueIsOutOfRangeError("paymentMethod length", len(label), 1, maxPaymentMethodLength)
	}
	return PaymentMethod{label: label}, nil
}

func (p PaymentMethod) String() string {
	return p.label
}
