package docdata

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-resty/resty/v2"

	"docdata_gateway/internal/domain/entities"
)

var ErrMissingMerchantName = errors.New("missing merchant name")
var ErrMissingMerchantPassword = errors.New("missing merchant password")

const (
	soapEnvelopeOpen  = `<?xml version="1.0" encoding="UTF-8"?><SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"><SOAP-ENV:Body>`
	soapEnvelopeClose = `</SOAP-ENV:Body></SOAP-ENV:Envelope>`
)

// Config configures a Client. Everything is explicit constructor input; the
// client holds no global or mutable state.
type Config struct {
	MerchantName     string
	MerchantPassword string
	// Test selects the test endpoints for both the payment service and the
	// hosted payment menu.
	Test bool
	// SubjectMerchant, when set, executes every call on behalf of this
	// sub-merchant unless the operation parameters carry their own.
	SubjectMerchant *entities.SubjectMerchant
	// PluginVersion and XSDVersion feed the integrationInfo trailer.
	PluginVersion string
	XSDVersion    string
	// BaseURL overrides the payment service endpoint. Leave empty outside
	// tests.
	BaseURL string
}

// Client talks to the Docdata Order API: it builds the request document,
// performs the SOAP exchange and interprets the response document. Merchant
// credentials always come from the client configuration.
type Client struct {
	http     *resty.Client
	cfg      Config
	buildCfg BuildConfig
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.MerchantName == "" {
		log.Printf("[docdata][client] missing merchant name")
		return nil, ErrMissingMerchantName
	}
	if cfg.MerchantPassword == "" {
		log.Printf("[docdata][client] missing merchant password")
		return nil, ErrMissingMerchantPassword
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = serviceURL(cfg.Test)
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "text/xml; charset=utf-8")

	return &Client{
		http:     httpClient,
		cfg:      cfg,
		buildCfg: BuildConfig{PluginVersion: cfg.PluginVersion, XSDVersion: cfg.XSDVersion},
	}, nil
}

// CreateOrder registers a new order with the gateway.
func (c *Client) CreateOrder(ctx context.Context, order entities.CreateOrder) (*CreateResult, error) {
	order.Merchant = c.merchant()
	order.SubjectMerchant = c.subjectMerchant(order.SubjectMerchant)

	request, err := BuildCreate(c.buildCfg, order)
	if err != nil {
		return nil, err
	}

	log.Printf("[docdata][client] create start order_reference=%s", order.OrderReference)
	body, err := c.call(ctx, "create", request)
	if err != nil {
		return nil, err
	}
	res, err := ParseCreateResponse(body)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		log.Printf("[docdata][client] create rejected order_reference=%s code=%s", order.OrderReference, res.ErrorCode())
		return res, nil
	}
	log.Printf("[docdata][client] create success order_reference=%s order_key=%s", order.OrderReference, res.OrderKey)
	return res, nil
}

// StartPayment starts a payment attempt for a created order (Webdirect).
func (c *Client) StartPayment(ctx context.Context, start entities.StartPayment) (*StartResult, error) {
	start.Merchant = c.merchant()
	start.SubjectMerchant = c.subjectMerchant(start.SubjectMerchant)

	request, err := BuildStart(c.buildCfg, start)
	if err != nil {
		return nil, err
	}

	log.Printf("[docdata][client] start order_key=%s", start.OrderKey)
	body, err := c.call(ctx, "start", request)
	if err != nil {
		return nil, err
	}
	res, err := ParseStartResponse(body)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		log.Printf("[docdata][client] start rejected order_key=%s code=%s", start.OrderKey, res.ErrorCode())
		return res, nil
	}
	log.Printf("[docdata][client] start success order_key=%s payment_id=%s", start.OrderKey, res.PaymentID)
	return res, nil
}

// OrderStatus retrieves the extended status report of an order.
func (c *Client) OrderStatus(ctx context.Context, query entities.StatusQuery) (*StatusResult, error) {
	query.Merchant = c.merchant()
	query.SubjectMerchant = c.subjectMerchant(query.SubjectMerchant)

	request, err := BuildStatus(c.buildCfg, query)
	if err != nil {
		return nil, err
	}

	log.Printf("[docdata][client] status order_key=%s", query.OrderKey)
	body, err := c.call(ctx, "statusExtended", request)
	if err != nil {
		return nil, err
	}
	return ParseStatusResponse(body)
}

// Refund refunds (part of) a captured payment.
func (c *Client) Refund(ctx context.Context, refund entities.RefundOrder) (*RefundResult, error) {
	refund.Merchant = c.merchant()
	refund.SubjectMerchant = c.subjectMerchant(refund.SubjectMerchant)

	request, err := BuildRefund(c.buildCfg, refund)
	if err != nil {
		return nil, err
	}

	log.Printf("[docdata][client] refund payment_id=%s amount=%s", refund.PaymentID, refund.Amount)
	body, err := c.call(ctx, "refund", request)
	if err != nil {
		return nil, err
	}
	return ParseRefundResponse(body)
}

// PaymentMethods lists the payment methods available for an order.
func (c *Client) PaymentMethods(ctx context.Context, list entities.ListPaymentMethods) (*ListPaymentMethodsResult, error) {
	list.Merchant = c.merchant()
	list.SubjectMerchant = c.subjectMerchant(list.SubjectMerchant)

	request, err := BuildListPaymentMethods(c.buildCfg, list)
	if err != nil {
		return nil, err
	}

	log.Printf("[docdata][client] list payment methods order_key=%s", list.OrderKey)
	body, err := c.call(ctx, "listPaymentMethods", request)
	if err != nil {
		return nil, err
	}
	return ParseListPaymentMethodsResponse(body)
}

// RedirectURL builds the hosted payment menu URL for a created order, using
// the endpoint pair the client is configured for.
func (c *Client) RedirectURL(order entities.CreateOrder, orderKey string) (string, error) {
	order.Merchant = c.merchant()
	order.SubjectMerchant = c.subjectMerchant(order.SubjectMerchant)
	return RedirectURL(order, orderKey, c.cfg.Test)
}

func (c *Client) merchant() entities.Merchant {
	return entities.Merchant{Name: c.cfg.MerchantName, Password: c.cfg.MerchantPassword}
}

func (c *Client) subjectMerchant(override *entities.SubjectMerchant) *entities.SubjectMerchant {
	if override != nil {
		return override
	}
	return c.cfg.SubjectMerchant
}

// call wraps the operation element in a SOAP envelope and performs the HTTP
// exchange. Transport failures stay TransportError; they are never read as a
// gateway business failure.
func (c *Client) call(ctx context.Context, op string, request []byte) ([]byte, error) {
	payload := soapEnvelopeOpen + string(request) + soapEnvelopeClose

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("")
	if err != nil {
		log.Printf("[docdata][client] %s transport failed err=%v", op, err)
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		log.Printf("[docdata][client] %s unexpected http status=%d", op, resp.StatusCode())
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}
