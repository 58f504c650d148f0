package routes

import (
	"docdata_gateway/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders   = "/orders"
	PathPayments = "/payments"
)

func addCheckoutRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", checkoutHandler.StartCheckout)
		orders.GET("/:order_key/status", checkoutHandler.GetPaymentStatus)
		orders.GET("/:order_key/payment-methods", checkoutHandler.ListPaymentMethods)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:payment_id/refunds", checkoutHandler.RefundPayment)
	}
}
