package entities

// PaymentMethod is a payment method code as known by Docdata.
type PaymentMethod string

const (
	PaymentMethodIdeal           PaymentMethod = "IDEAL"
	PaymentMethodVisa            PaymentMethod = "VISA"
	PaymentMethodMasterCard      PaymentMethod = "MASTERCARD"
	PaymentMethodMaestro         PaymentMethod = "MAESTRO"
	PaymentMethodAmex            PaymentMethod = "AMEX"
	PaymentMethodPayPal          PaymentMethod = "PAYPAL_EXPRESS_CHECKOUT"
	PaymentMethodSEPADirectDebit PaymentMethod = "SEPA_DIRECT_DEBIT"
)

// Known reports whether the method is one the gateway accepts for starting
// a payment through the order API.
func (m PaymentMethod) Known() bool {
	switch m {
	case PaymentMethodIdeal, PaymentMethodVisa, PaymentMethodMasterCard,
		PaymentMethodMaestro, PaymentMethodAmex, PaymentMethodPayPal,
		PaymentMethodSEPADirectDebit:
		return true
	}
	return false
}

// PaymentMethodDetails is a method offered for an order, optionally with the
// banks a shopper can pick for bank-redirect methods such as iDEAL.
type PaymentMethodDetails struct {
	Method PaymentMethod `json:"method"`
	// Issuers maps issuer id (BIC) to display name. Only filled for methods
	// that route through a bank-issuer selection.
	Issuers map[string]string `json:"issuers,omitempty"`
}

// IdealIssuers is the static iDEAL issuer list published by Docdata.
var IdealIssuers = map[string]string{
	"ABNANL2A": "ABN AMRO",
	"ASNBNL21": "ASN Bank",
	"BUNQNL2A": "bunq",
	"INGBNL2A": "ING",
	"KNABNL2H": "Knab bank",
	"RABONL2U": "Rabobank",
	"RBRBNL21": "RegioBank",
	"SNSBNL2A": "SNS Bank",
	"TRIONL2U": "Triodos Bank",
	"FVLBNL22": "Van Lanschot",
}

// Gender code for the shopper element, per the Docdata schema.
type Gender string

const (
	GenderMale      Gender = "M"
	GenderFemale    Gender = "F"
	GenderUndefined Gender = "U"
)
