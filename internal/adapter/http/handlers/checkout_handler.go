package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docdata_gateway/internal/adapter/http/dto/request"
	response "docdata_gateway/internal/adapter/http/dto/response"
	"docdata_gateway/internal/domain/entities"
	"docdata_gateway/internal/infrastructure/payments/docdata"
	"docdata_gateway/internal/usecase"
	"docdata_gateway/pkg"
)

// CheckoutHandler handles HTTP requests for the hosted-payment-page checkout.

type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// StartCheckout creates an order with the gateway and returns the redirect URL.
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	var req request.CheckoutCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[checkout][handler] invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	order, err := req.ToCreateOrder()
	if err != nil {
		log.Printf("[checkout][handler] invalid amount err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amount must be a decimal string", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[checkout][handler] start order_reference=%s", order.OrderReference)
	checkout, err := h.usecase.StartCheckout(c.Request.Context(), order)
	if err != nil {
		log.Printf("[checkout][handler] start failed order_reference=%s err=%v", order.OrderReference, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if checkout.Rejection != nil {
		c.JSON(http.StatusUnprocessableEntity, response.FromCheckout(checkout))
		return
	}
	log.Printf("[checkout][handler] start success order_key=%s", checkout.OrderKey)

	c.JSON(http.StatusOK, response.FromCheckout(checkout))
}

// GetPaymentStatus returns the interpreted status report of an order.
func (h *CheckoutHandler) GetPaymentStatus(c *gin.Context) {
	orderKey := c.Param("order_key")
	log.Printf("[checkout][handler] status start order_key=%s", orderKey)

	status, err := h.usecase.PaymentStatus(c.Request.Context(), orderKey)
	if err != nil {
		log.Printf("[checkout][handler] status failed order_key=%s err=%v", orderKey, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if status.Rejection != nil {
		c.JSON(http.StatusUnprocessableEntity, response.FromPaymentStatus(status))
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentStatus(status))
}

// RefundPayment refunds (part of) a payment identified in the path.
func (h *CheckoutHandler) RefundPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var req request.RefundCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[checkout][handler] invalid refund payload payment_id=%s err=%v", paymentID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	refund, err := req.ToRefundOrder(paymentID)
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amount must be a decimal string", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[checkout][handler] refund start payment_id=%s amount=%s", paymentID, refund.Amount)
	outcome, err := h.usecase.RefundPayment(c.Request.Context(), refund)
	if err != nil {
		log.Printf("[checkout][handler] refund failed payment_id=%s err=%v", paymentID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if outcome.Rejection != nil {
		c.JSON(http.StatusUnprocessableEntity, response.FromRefund(outcome))
		return
	}
	log.Printf("[checkout][handler] refund success payment_id=%s refund_reference=%s", paymentID, outcome.RefundReference)

	c.JSON(http.StatusOK, response.FromRefund(outcome))
}

// ListPaymentMethods lists the payment methods available for an order.
func (h *CheckoutHandler) ListPaymentMethods(c *gin.Context) {
	orderKey := c.Param("order_key")
	log.Printf("[checkout][handler] list payment methods order_key=%s", orderKey)

	methods, err := h.usecase.PaymentMethods(c.Request.Context(), orderKey)
	if err != nil {
		log.Printf("[checkout][handler] list payment methods failed order_key=%s err=%v", orderKey, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if methods.Rejection != nil {
		c.JSON(http.StatusUnprocessableEntity, response.FromPaymentMethods(methods))
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentMethods(methods))
}

func mapCheckoutError(err error) *pkg.AppError {
	var validationErr *docdata.ValidationError
	var protocolErr *docdata.ProtocolError
	var transportErr *docdata.TransportError

	switch {
	case errors.Is(err, usecase.ErrInvalidOrderKey),
		errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidRefundAmount),
		errors.Is(err, entities.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.As(err, &validationErr):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &protocolErr):
		return pkg.NewDomainError("GATEWAY_PROTOCOL_ERROR", "Gateway response could not be interpreted", err, http.StatusBadGateway)
	case errors.As(err, &transportErr):
		return pkg.NewDomainError("GATEWAY_UNAVAILABLE", "Gateway could not be reached", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("GATEWAY_NOT_CONFIGURED", "Order gateway not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
