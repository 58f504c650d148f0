package request

import (
	"docdata_gateway/internal/domain/entities"
)

// ShopperRequest is the shopper identity block of a checkout payload.
type ShopperRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name" binding:"required"`
	Infix     string `json:"infix"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Language  string `json:"language" binding:"required"`
	Gender    string `json:"gender" binding:"required"`
	IPAddress string `json:"ip_address"`
}

// AddressRequest is the billing address block of a checkout payload.
type AddressRequest struct {
	Street      string `json:"street" binding:"required"`
	HouseNumber string `json:"house_number" binding:"required"`
	PostalCode  string `json:"postal_code" binding:"required"`
	City        string `json:"city" binding:"required"`
	Country     string `json:"country" binding:"required"`
}

// CheckoutCreateRequest is the payload for starting a checkout.
//
// `amount` is a decimal string ("12.34"); float JSON numbers are not accepted.
type CheckoutCreateRequest struct {
	OrderReference string         `json:"order_reference"`
	Profile        string         `json:"profile" binding:"required"`
	Amount         string         `json:"amount" binding:"required"`
	Currency       string         `json:"currency"`
	Description    string         `json:"description" binding:"required"`
	Shopper        ShopperRequest `json:"shopper" binding:"required"`
	Address        AddressRequest `json:"address" binding:"required"`
	PaymentMethod  string         `json:"payment_method"`
	IssuerID       string         `json:"issuer_id"`
	ReturnURL      string         `json:"return_url"`
}

// ToCreateOrder maps the payload onto the typed order parameters. Merchant
// credentials are stamped later by the gateway client.
func (r CheckoutCreateRequest) ToCreateOrder() (entities.CreateOrder, error) {
	amount, err := entities.NewAmount(r.Amount)
	if err != nil {
		return entities.CreateOrder{}, err
	}

	return entities.CreateOrder{
		OrderReference: r.OrderReference,
		Profile:        r.Profile,
		Amount:         amount,
		Currency:       r.Currency,
		Description:    r.Description,
		Shopper: entities.Shopper{
			ID:        r.Shopper.ID,
			FirstName: r.Shopper.FirstName,
			Infix:     r.Shopper.Infix,
			LastName:  r.Shopper.LastName,
			Email:     r.Shopper.Email,
			Language:  r.Shopper.Language,
			Gender:    entities.Gender(r.Shopper.Gender),
			IPAddress: r.Shopper.IPAddress,
		},
		Address: entities.Address{
			Street:      r.Address.Street,
			HouseNumber: r.Address.HouseNumber,
			PostalCode:  r.Address.PostalCode,
			City:        r.Address.City,
			Country:     r.Address.Country,
		},
		PaymentMethod: entities.PaymentMethod(r.PaymentMethod),
		IssuerID:      r.IssuerID,
		ReturnURL:     r.ReturnURL,
	}, nil
}

// RefundCreateRequest is the payload for refunding a payment.
type RefundCreateRequest struct {
	Amount          string `json:"amount" binding:"required"`
	Currency        string `json:"currency"`
	RefundReference string `json:"refund_reference"`
}

// ToRefundOrder maps the payload onto the typed refund parameters.
func (r RefundCreateRequest) ToRefundOrder(paymentID string) (entities.RefundOrder, error) {
	amount, err := entities.NewAmount(r.Amount)
	if err != nil {
		return entities.RefundOrder{}, err
	}

	return entities.RefundOrder{
		PaymentID:       paymentID,
		RefundReference: r.RefundReference,
		Amount:          amount,
		Currency:        r.Currency,
	}, nil
}
