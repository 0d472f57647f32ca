package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "efectivo"
	PaymentMethodCard         PaymentMethod = "tarjeta"
	PaymentMethodBankTransfer PaymentMethod = "transferencia"
)

var PaymentMethods = []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range PaymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", &ValidationError{Field: "method", Reason: "unrecognized payment method " + quote(s)}
}

type PaymentState string

const (
	PaymentStateNoMethod       PaymentState = "no_method"
	PaymentStateMethodSelected PaymentState = "method_selected"
	PaymentStateConfirmed      PaymentState = "confirmed"
)

type PaymentRecord struct {
	Method      PaymentMethod `json:"method,omitempty"`
	Confirmed   bool          `json:"confirmed"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
}
