package response

import (
	"docdata_gateway/internal/usecase"
)

// GatewayErrorResponse surfaces a functional failure reported by the gateway,
// code and message unchanged.
type GatewayErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func fromRejection(r *usecase.Rejection) *GatewayErrorResponse {
	if r == nil {
		return nil
	}
	return &GatewayErrorResponse{Code: r.Code, Message: r.Message}
}

// CheckoutResponse is the outcome of starting a checkout.
type CheckoutResponse struct {
	OrderReference string                `json:"order_reference"`
	OrderKey       string                `json:"order_key,omitempty"`
	RedirectURL    string                `json:"redirect_url,omitempty"`
	Error          *GatewayErrorResponse `json:"error,omitempty"`
}

func FromCheckout(c usecase.Checkout) CheckoutResponse {
	return CheckoutResponse{
		OrderReference: c.OrderReference,
		OrderKey:       c.OrderKey,
		RedirectURL:    c.RedirectURL,
		Error:          fromRejection(c.Rejection),
	}
}

// TotalsResponse reports the order's monetary totals as fixed 2-decimal strings.
type TotalsResponse struct {
	Registered       string `json:"registered"`
	ShopperPending   string `json:"shopper_pending"`
	AcquirerPending  string `json:"acquirer_pending"`
	AcquirerApproved string `json:"acquirer_approved"`
	Captured         string `json:"captured"`
	Refunded         string `json:"refunded"`
	Reversed         string `json:"reversed"`
	ChargedBack      string `json:"charged_back"`
}

// PaymentStatusResponse is the interpreted status report of an order.
type PaymentStatusResponse struct {
	PaymentID           string         `json:"payment_id,omitempty"`
	PaymentMethod       string         `json:"payment_method,omitempty"`
	AuthorizationStatus string         `json:"authorization_status,omitempty"`
	Totals              TotalsResponse `json:"totals"`

	Paid        bool `json:"paid"`
	Refunded    bool `json:"refunded"`
	ChargedBack bool `json:"charged_back"`
	Reversed    bool `json:"reversed"`
	Cancelled   bool `json:"cancelled"`
	Started     bool `json:"started"`

	ConsumerName  string `json:"consumer_name,omitempty"`
	ConsumerIBAN  string `json:"consumer_iban,omitempty"`
	ConsumerBIC   string `json:"consumer_bic,omitempty"`
	MandateNumber string `json:"mandate_number,omitempty"`

	Error *GatewayErrorResponse `json:"error,omitempty"`
}

func FromPaymentStatus(s usecase.PaymentStatus) PaymentStatusResponse {
	return PaymentStatusResponse{
		PaymentID:           s.PaymentID,
		PaymentMethod:       string(s.PaymentMethod),
		AuthorizationStatus: s.AuthorizationStatus,
		Totals: TotalsResponse{
			Registered:       s.Totals.Registered.String(),
			ShopperPending:   s.Totals.ShopperPending.String(),
			AcquirerPending:  s.Totals.AcquirerPending.String(),
			AcquirerApproved: s.Totals.AcquirerApproved.String(),
			Captured:         s.Totals.Captured.String(),
			Refunded:         s.Totals.Refunded.String(),
			Reversed:         s.Totals.Reversed.String(),
			ChargedBack:      s.Totals.ChargedBack.String(),
		},
		Paid:          s.Paid,
		Refunded:      s.Refunded,
		ChargedBack:   s.ChargedBack,
		Reversed:      s.Reversed,
		Cancelled:     s.Cancelled,
		Started:       s.Started,
		ConsumerName:  s.ConsumerName,
		ConsumerIBAN:  s.ConsumerIBAN,
		ConsumerBIC:   s.ConsumerBIC,
		MandateNumber: s.MandateNumber,
		Error:         fromRejection(s.Rejection),
	}
}

// RefundResponse is the outcome of refunding a payment.
type RefundResponse struct {
	PaymentID       string                `json:"payment_id"`
	RefundReference string                `json:"refund_reference,omitempty"`
	Error           *GatewayErrorResponse `json:"error,omitempty"`
}

func FromRefund(r usecase.Refund) RefundResponse {
	return RefundResponse{
		PaymentID:       r.PaymentID,
		RefundReference: r.RefundReference,
		Error:           fromRejection(r.Rejection),
	}
}

// PaymentMethodResponse is one payment method offered for an order.
type PaymentMethodResponse struct {
	Method  string            `json:"method"`
	Issuers map[string]string `json:"issuers,omitempty"`
}

// PaymentMethodsResponse is the outcome of listing payment methods.
type PaymentMethodsResponse struct {
	Methods []PaymentMethodResponse `json:"methods"`
	Error   *GatewayErrorResponse   `json:"error,omitempty"`
}

func FromPaymentMethods(m usecase.PaymentMethods) PaymentMethodsResponse {
	res := PaymentMethodsResponse{Error: fromRejection(m.Rejection)}
	for _, method := range m.Methods {
		res.Methods = append(res.Methods, PaymentMethodResponse{
			Method:  string(method.Method),
			Issuers: method.Issuers,
		})
	}
	return res
}
