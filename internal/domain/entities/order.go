package entities

// Typed parameter structs for the Docdata order API operations.
//
// Required fields are validated when the request document is built; optional
// blocks are pointers so absence is explicit instead of a zero-value guess.

// Merchant carries the credentials every request authenticates with.
type Merchant struct {
	Name     string
	Password string
}

// SubjectMerchantFee is the platform fee applied to a subject merchant call.
type SubjectMerchantFee struct {
	// Moment defaults to "FULLY_PAID" when empty.
	Moment string
	Amount Amount
	// Currency defaults to "EUR" when empty.
	Currency    string
	Description string
}

// SubjectMerchant is the sub-merchant on whose behalf a platform merchant
// executes a call.
type SubjectMerchant struct {
	Name  string
	Token string
	Fee   SubjectMerchantFee
}

// Shopper identifies the person placing the order.
type Shopper struct {
	// ID is caller-supplied; when empty a random token is generated.
	ID        string
	FirstName string
	// Infix is any middle name(s), optional.
	Infix     string
	LastName  string
	Email     string
	Language  string
	Gender    Gender
	IPAddress string
}

// Address is the billing address for an order.
type Address struct {
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
	// Country code according to ISO 3166.
	Country string
}

// InitialPayment marks an order as the first payment of a recurring series.
type InitialPayment struct {
	MerchantReference string
}

// RecurringPayment references the initial payment of a recurring series when
// starting a follow-up payment.
type RecurringPayment struct {
	MerchantReference string
}

// CreateOrder are the parameters for the create operation.
type CreateOrder struct {
	Merchant        Merchant
	SubjectMerchant *SubjectMerchant

	OrderReference string
	Profile        string
	Shopper        Shopper
	Amount         Amount
	// Currency defaults to "EUR" when empty.
	Currency    string
	Address     Address
	Description string
	Initial     *InitialPayment

	// Pre-selected payment method for the hosted payment menu, optional.
	PaymentMethod PaymentMethod
	IssuerID      string
	ReturnURL     string
}

// PaymentInput selects the payment method for the start operation and carries
// the method-specific fields the gateway requires for it.
type PaymentInput interface {
	Method() PaymentMethod
}

// IdealPayment starts an iDEAL payment at the given issuer bank.
type IdealPayment struct {
	IssuerID string
}

func (IdealPayment) Method() PaymentMethod { return PaymentMethodIdeal }

// DirectDebitPayment starts a SEPA direct debit against the given account.
type DirectDebitPayment struct {
	HolderName string
	IBAN       string
	// BIC is optional.
	BIC string
}

func (DirectDebitPayment) Method() PaymentMethod { return PaymentMethodSEPADirectDebit }

// RedirectPayment starts a payment for a method that needs no extra input
// (cards, PayPal); the shopper completes it on the hosted payment pages.
type RedirectPayment struct {
	PaymentMethod PaymentMethod
}

func (p RedirectPayment) Method() PaymentMethod { return p.PaymentMethod }

// StartPayment are the parameters for the start operation. Either Recurring
// or Payment must be set; Recurring wins when both are present.
type StartPayment struct {
	Merchant        Merchant
	SubjectMerchant *SubjectMerchant

	OrderKey  string
	Recurring *RecurringPayment
	Payment   PaymentInput
}

// StatusQuery are the parameters for the extended status operation.
type StatusQuery struct {
	Merchant        Merchant
	SubjectMerchant *SubjectMerchant

	OrderKey string
}

// RefundOrder are the parameters for the refund operation.
type RefundOrder struct {
	Merchant        Merchant
	SubjectMerchant *SubjectMerchant

	PaymentID       string
	RefundReference string
	Amount          Amount
	// Currency defaults to "EUR" when empty.
	Currency string
}

// ListPaymentMethods are the parameters for the list payment methods operation.
type ListPaymentMethods struct {
	Merchant        Merchant
	SubjectMerchant *SubjectMerchant

	OrderKey string
}
