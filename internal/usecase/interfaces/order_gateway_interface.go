package interfaces

import (
	"context"

	"docdata_gateway/internal/domain/entities"
	"docdata_gateway/internal/infrastructure/payments/docdata"
)

//go:generate mockgen -source=order_gateway_interface.go -destination=mocks/order_gateway_mock.go -package=mock_interfaces

// IOrderGateway abstracts the Docdata order API client so the checkout
// usecase can be exercised without network calls.
type IOrderGateway interface {
	CreateOrder(ctx context.Context, order entities.CreateOrder) (*docdata.CreateResult, error)
	StartPayment(ctx context.Context, start entities.StartPayment) (*docdata.StartResult, error)
	OrderStatus(ctx context.Context, query entities.StatusQuery) (*docdata.StatusResult, error)
	Refund(ctx context.Context, refund entities.RefundOrder) (*docdata.RefundResult, error)
	PaymentMethods(ctx context.Context, list entities.ListPaymentMethods) (*docdata.ListPaymentMethodsResult, error)
	RedirectURL(order entities.CreateOrder, orderKey string) (string, error)
}
