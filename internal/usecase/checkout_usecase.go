package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"docdata_gateway/internal/domain/entities"
	"docdata_gateway/internal/infrastructure/payments/docdata"
	"docdata_gateway/internal/usecase/interfaces"
)

var (
	ErrInvalidOrderKey      = errors.New("invalid order key")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvalidRefundAmount  = errors.New("invalid refund amount")
	ErrGatewayNotConfigured = errors.New("order gateway not configured")
)

// ICheckoutUseCase drives a hosted-payment-page checkout against the gateway:
// create the order, hand the shopper a redirect URL, follow up on status and
// refunds.
type ICheckoutUseCase interface {
	StartCheckout(ctx context.Context, order entities.CreateOrder) (Checkout, error)
	PaymentStatus(ctx context.Context, orderKey string) (PaymentStatus, error)
	RefundPayment(ctx context.Context, refund entities.RefundOrder) (Refund, error)
	PaymentMethods(ctx context.Context, orderKey string) (PaymentMethods, error)
}

// Rejection is a functional failure reported by the gateway. The call itself
// completed, so this is outcome data rather than a Go error.
type Rejection struct {
	Code    string
	Message string
}

// Checkout is the outcome of starting a checkout.
type Checkout struct {
	OrderReference string
	OrderKey       string
	RedirectURL    string
	Rejection      *Rejection
}

// PaymentStatus is the interpreted status report of an order.
type PaymentStatus struct {
	PaymentID           string
	PaymentMethod       entities.PaymentMethod
	AuthorizationStatus string
	Totals              docdata.ApproximateTotals

	Paid        bool
	Refunded    bool
	ChargedBack bool
	Reversed    bool
	Cancelled   bool
	Started     bool

	ConsumerName  string
	ConsumerIBAN  string
	ConsumerBIC   string
	MandateNumber string

	Rejection *Rejection
}

// Refund is the outcome of refunding a payment.
type Refund struct {
	PaymentID       string
	RefundReference string
	Rejection       *Rejection
}

// PaymentMethods is the outcome of listing the methods offered for an order.
type PaymentMethods struct {
	Methods   []entities.PaymentMethodDetails
	Rejection *Rejection
}

type CheckoutUseCase struct {
	gateway interfaces.IOrderGateway
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(gateway interfaces.IOrderGateway) *CheckoutUseCase {
	return &CheckoutUseCase{gateway: gateway}
}

// StartCheckout creates the order and builds the payment menu redirect URL.
// An empty order reference gets a generated one.
func (u *CheckoutUseCase) StartCheckout(ctx context.Context, order entities.CreateOrder) (Checkout, error) {
	if u.gateway == nil {
		return Checkout{}, ErrGatewayNotConfigured
	}
	if strings.TrimSpace(order.OrderReference) == "" {
		order.OrderReference = uuid.NewString()
	}

	log.Printf("[checkout][usecase] start order_reference=%s amount=%s", order.OrderReference, order.Amount)
	res, err := u.gateway.CreateOrder(ctx, order)
	if err != nil {
		log.Printf("[checkout][usecase] create failed order_reference=%s err=%v", order.OrderReference, err)
		return Checkout{}, err
	}
	if res.IsError() {
		log.Printf("[checkout][usecase] create rejected order_reference=%s code=%s", order.OrderReference, res.ErrorCode())
		return Checkout{OrderReference: order.OrderReference, Rejection: rejection(res)}, nil
	}

	redirectURL, err := u.gateway.RedirectURL(order, res.OrderKey)
	if err != nil {
		return Checkout{}, err
	}
	log.Printf("[checkout][usecase] start success order_reference=%s order_key=%s", order.OrderReference, res.OrderKey)
	return Checkout{
		OrderReference: order.OrderReference,
		OrderKey:       res.OrderKey,
		RedirectURL:    redirectURL,
	}, nil
}

// PaymentStatus queries the order status and derives the payment-state flags.
func (u *CheckoutUseCase) PaymentStatus(ctx context.Context, orderKey string) (PaymentStatus, error) {
	if u.gateway == nil {
		return PaymentStatus{}, ErrGatewayNotConfigured
	}
	orderKey = strings.TrimSpace(orderKey)
	if orderKey == "" {
		return PaymentStatus{}, ErrInvalidOrderKey
	}

	res, err := u.gateway.OrderStatus(ctx, entities.StatusQuery{OrderKey: orderKey})
	if err != nil {
		log.Printf("[checkout][usecase] status failed order_key=%s err=%v", orderKey, err)
		return PaymentStatus{}, err
	}
	if res.IsError() {
		log.Printf("[checkout][usecase] status rejected order_key=%s code=%s", orderKey, res.ErrorCode())
		return PaymentStatus{Rejection: rejection(res)}, nil
	}

	return PaymentStatus{
		PaymentID:           res.PaymentID,
		PaymentMethod:       res.PaymentMethod,
		AuthorizationStatus: res.AuthorizationStatus,
		Totals:              res.Totals,
		Paid:                res.Paid(),
		Refunded:            res.Refunded(),
		ChargedBack:         res.ChargedBack(),
		Reversed:            res.Reversed(),
		Cancelled:           res.Cancelled(),
		Started:             res.Started(),
		ConsumerName:        res.ConsumerName,
		ConsumerIBAN:        res.ConsumerIBAN,
		ConsumerBIC:         res.ConsumerBIC,
		MandateNumber:       res.MandateNumber,
	}, nil
}

// RefundPayment refunds (part of) a payment. An empty refund reference gets a
// generated one.
func (u *CheckoutUseCase) RefundPayment(ctx context.Context, refund entities.RefundOrder) (Refund, error) {
	if u.gateway == nil {
		return Refund{}, ErrGatewayNotConfigured
	}
	refund.PaymentID = strings.TrimSpace(refund.PaymentID)
	if refund.PaymentID == "" {
		return Refund{}, ErrInvalidPaymentID
	}
	if refund.Amount.IsZero() {
		return Refund{}, ErrInvalidRefundAmount
	}
	if strings.TrimSpace(refund.RefundReference) == "" {
		refund.RefundReference = uuid.NewString()
	}

	log.Printf("[checkout][usecase] refund payment_id=%s amount=%s", refund.PaymentID, refund.Amount)
	res, err := u.gateway.Refund(ctx, refund)
	if err != nil {
		log.Printf("[checkout][usecase] refund failed payment_id=%s err=%v", refund.PaymentID, err)
		return Refund{}, err
	}
	if res.IsError() {
		log.Printf("[checkout][usecase] refund rejected payment_id=%s code=%s", refund.PaymentID, res.ErrorCode())
		return Refund{PaymentID: refund.PaymentID, Rejection: rejection(res)}, nil
	}
	return Refund{PaymentID: refund.PaymentID, RefundReference: refund.RefundReference}, nil
}

// PaymentMethods lists the payment methods available for an order.
func (u *CheckoutUseCase) PaymentMethods(ctx context.Context, orderKey string) (PaymentMethods, error) {
	if u.gateway == nil {
		return PaymentMethods{}, ErrGatewayNotConfigured
	}
	orderKey = strings.TrimSpace(orderKey)
	if orderKey == "" {
		return PaymentMethods{}, ErrInvalidOrderKey
	}

	res, err := u.gateway.PaymentMethods(ctx, entities.ListPaymentMethods{OrderKey: orderKey})
	if err != nil {
		log.Printf("[checkout][usecase] list payment methods failed order_key=%s err=%v", orderKey, err)
		return PaymentMethods{}, err
	}
	if res.IsError() {
		return PaymentMethods{Rejection: rejection(res)}, nil
	}
	return PaymentMethods{Methods: res.Methods}, nil
}

type gatewayResult interface {
	IsError() bool
	ErrorCode() string
	ErrorMessage() string
}

func rejection(res gatewayResult) *Rejection {
	if !res.IsError() {
		return nil
	}
	return &Rejection{Code: res.ErrorCode(), Message: res.ErrorMessage()}
}
