package docdata

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"runtime"
	"strconv"

	"github.com/beevik/etree"

	"docdata_gateway/internal/domain/entities"
)

// The Order API schema is order-sensitive: element order between siblings must
// match the XSD exactly, so every builder emits its elements in schema order
// and never reorders siblings when optional fields are absent.

const xmlnsDDP = "http://www.docdatapayments.com/services/paymentservice/1_3/"

const (
	pluginName     = "docdata_gateway"
	integratorName = "Grupo 95"

	defaultCurrency  = "EUR"
	defaultFeeMoment = "FULLY_PAID"

	// The gateway keeps an order payable for a fixed 14-day window.
	paymentWindowDays = 14

	// receiptText is capped by the gateway; longer descriptions are truncated,
	// not rejected.
	receiptTextLimit = 49
)

// BuildConfig carries the integration metadata supplied by the caller's build
// configuration. Everything else in the integrationInfo trailer is constant.
type BuildConfig struct {
	// PluginVersion identifies this integration's version.
	PluginVersion string
	// XSDVersion is the Order API schema version; "1.3" when empty.
	XSDVersion string
}

func (c BuildConfig) xsdVersion() string {
	if c.XSDVersion == "" {
		return "1.3"
	}
	return c.XSDVersion
}

// BuildCreate produces the create request document for a new order.
func BuildCreate(cfg BuildConfig, order entities.CreateOrder) ([]byte, error) {
	check := &fieldCheck{op: "create"}
	requireMerchant(check, order.Merchant)
	check.require("orderReference", order.OrderReference)
	check.require("profile", order.Profile)
	check.require("shopper.firstName", order.Shopper.FirstName)
	check.require("shopper.lastName", order.Shopper.LastName)
	check.require("shopper.email", order.Shopper.Email)
	check.require("shopper.language", order.Shopper.Language)
	check.require("shopper.gender", string(order.Shopper.Gender))
	check.require("address.street", order.Address.Street)
	check.require("address.houseNumber", order.Address.HouseNumber)
	check.require("address.postalCode", order.Address.PostalCode)
	check.require("address.city", order.Address.City)
	check.require("address.country", order.Address.Country)
	check.require("description", order.Description)
	if order.Amount.IsZero() {
		check.missing = append(check.missing, "amount")
	}
	if err := check.err(); err != nil {
		return nil, err
	}

	doc, root := newOperation("create", cfg)
	appendMerchant(root, order.Merchant, order.SubjectMerchant)

	root.CreateElement("merchantOrderReference").SetText(order.OrderReference)

	preferences := root.CreateElement("paymentPreferences")
	preferences.CreateElement("profile").SetText(order.Profile)
	preferences.CreateElement("numberOfDaysToPay").SetText(strconv.Itoa(paymentWindowDays))

	shopper := root.CreateElement("shopper")
	shopper.CreateAttr("id", shopperID(order.Shopper))
	appendName(shopper, order.Shopper)
	shopper.CreateElement("email").SetText(order.Shopper.Email)
	shopper.CreateElement("language").CreateAttr("code", order.Shopper.Language)
	shopper.CreateElement("gender").SetText(string(order.Shopper.Gender))
	if order.Shopper.IPAddress != "" {
		shopper.CreateElement("ipAddress").SetText(order.Shopper.IPAddress)
	}

	gross := root.CreateElement("totalGrossAmount")
	gross.CreateAttr("currency", currencyOr(order.Currency))
	gross.SetText(strconv.FormatInt(order.Amount.Cents(), 10))

	billTo := root.CreateElement("billTo")
	appendName(billTo, order.Shopper)
	address := billTo.CreateElement("address")
	address.CreateElement("street").SetText(order.Address.Street)
	address.CreateElement("houseNumber").SetText(order.Address.HouseNumber)
	address.CreateElement("postalCode").SetText(order.Address.PostalCode)
	address.CreateElement("city").SetText(order.Address.City)
	address.CreateElement("country").CreateAttr("code", order.Address.Country)

	root.CreateElement("description").SetText(order.Description)
	root.CreateElement("receiptText").SetText(receiptText(order.Description))

	if order.Initial != nil {
		request := root.CreateElement("paymentRequest")
		reference := request.CreateElement("initialPaymentReference")
		reference.CreateElement("merchantReference").SetText(order.Initial.MerchantReference)
	}

	return finish(doc, root, cfg)
}

// BuildStart produces the start request document for a payment attempt.
func BuildStart(cfg BuildConfig, start entities.StartPayment) ([]byte, error) {
	check := &fieldCheck{op: "start"}
	requireMerchant(check, start.Merchant)
	check.require("orderKey", start.OrderKey)
	if start.Recurring != nil {
		check.require("recurring.merchantReference", start.Recurring.MerchantReference)
	} else if start.Payment == nil {
		check.missing = append(check.missing, "payment")
	} else {
		switch p := start.Payment.(type) {
		case entities.IdealPayment:
			check.require("payment.issuerId", p.IssuerID)
		case entities.DirectDebitPayment:
			check.require("payment.holderName", p.HolderName)
			check.require("payment.iban", p.IBAN)
		case entities.RedirectPayment:
			if !p.PaymentMethod.Known() {
				return nil, &ValidationError{Op: "start", Reason: fmt.Sprintf("payment method not supported: %s", p.PaymentMethod)}
			}
		default:
			return nil, &ValidationError{Op: "start", Reason: fmt.Sprintf("payment method not supported: %s", start.Payment.Method())}
		}
	}
	if err := check.err(); err != nil {
		return nil, err
	}

	doc, root := newOperation("start", cfg)
	appendMerchant(root, start.Merchant, start.SubjectMerchant)

	root.CreateElement("paymentOrderKey").SetText(start.OrderKey)

	if start.Recurring != nil {
		request := root.CreateElement("recurringPaymentRequest")
		reference := request.CreateElement("initialPaymentReference")
		reference.CreateElement("merchantReference").SetText(start.Recurring.MerchantReference)
	} else {
		payment := root.CreateElement("payment")
		payment.CreateElement("paymentMethod").SetText(string(start.Payment.Method()))

		switch p := start.Payment.(type) {
		case entities.IdealPayment:
			input := payment.CreateElement("iDealPaymentInput")
			input.CreateElement("issuerId").SetText(p.IssuerID)
		case entities.DirectDebitPayment:
			input := payment.CreateElement("directDebitPaymentInput")
			input.CreateElement("holderName").SetText(p.HolderName)
			input.CreateElement("iban").SetText(p.IBAN)
			if p.BIC != "" {
				input.CreateElement("bic").SetText(p.BIC)
			}
		}
	}

	return finish(doc, root, cfg)
}

// BuildStatus produces the extended status request document for an order.
func BuildStatus(cfg BuildConfig, query entities.StatusQuery) ([]byte, error) {
	check := &fieldCheck{op: "statusExtended"}
	requireMerchant(check, query.Merchant)
	check.require("orderKey", query.OrderKey)
	if err := check.err(); err != nil {
		return nil, err
	}

	doc, root := newOperation("statusExtended", cfg)
	appendMerchant(root, query.Merchant, query.SubjectMerchant)
	root.CreateElement("paymentOrderKey").SetText(query.OrderKey)

	return finish(doc, root, cfg)
}

// BuildRefund produces the refund request document for a payment.
func BuildRefund(cfg BuildConfig, refund entities.RefundOrder) ([]byte, error) {
	check := &fieldCheck{op: "refund"}
	requireMerchant(check, refund.Merchant)
	check.require("paymentId", refund.PaymentID)
	check.require("merchantRefundReference", refund.RefundReference)
	if refund.Amount.IsZero() {
		check.missing = append(check.missing, "amount")
	}
	if err := check.err(); err != nil {
		return nil, err
	}

	doc, root := newOperation("refund", cfg)
	appendMerchant(root, refund.Merchant, refund.SubjectMerchant)

	root.CreateElement("paymentId").SetText(refund.PaymentID)
	root.CreateElement("merchantRefundReference").SetText(refund.RefundReference)
	amount := root.CreateElement("amount")
	amount.CreateAttr("currency", currencyOr(refund.Currency))
	amount.SetText(strconv.FormatInt(refund.Amount.Cents(), 10))

	return finish(doc, root, cfg)
}

// BuildListPaymentMethods produces the list payment methods request document.
func BuildListPaymentMethods(cfg BuildConfig, list entities.ListPaymentMethods) ([]byte, error) {
	check := &fieldCheck{op: "listPaymentMethods"}
	requireMerchant(check, list.Merchant)
	check.require("orderKey", list.OrderKey)
	if err := check.err(); err != nil {
		return nil, err
	}

	doc, root := newOperation("listPaymentMethods", cfg)
	appendMerchant(root, list.Merchant, list.SubjectMerchant)
	root.CreateElement("paymentOrderKey").SetText(list.OrderKey)

	return finish(doc, root, cfg)
}

func newOperation(op string, cfg BuildConfig) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	root := doc.CreateElement(op)
	root.CreateAttr("xmlns", xmlnsDDP)
	root.CreateAttr("version", cfg.xsdVersion())
	return doc, root
}

func requireMerchant(check *fieldCheck, merchant entities.Merchant) {
	check.require("merchant.name", merchant.Name)
	check.require("merchant.password", merchant.Password)
}

// appendMerchant emits the credentials element: flat when the call runs for
// the merchant itself, wrapping a subjectMerchant element with a fee block
// when it runs on behalf of a sub-merchant.
func appendMerchant(root *etree.Element, merchant entities.Merchant, subject *entities.SubjectMerchant) {
	el := root.CreateElement("merchant")
	el.CreateAttr("name", merchant.Name)
	el.CreateAttr("password", merchant.Password)
	if subject == nil {
		return
	}

	sub := el.CreateElement("subjectMerchant")
	sub.CreateAttr("name", subject.Name)
	sub.CreateAttr("token", subject.Token)

	moment := subject.Fee.Moment
	if moment == "" {
		moment = defaultFeeMoment
	}
	fee := sub.CreateElement("fee")
	fee.CreateAttr("moment", moment)
	amount := fee.CreateElement("amount")
	amount.CreateAttr("currency", currencyOr(subject.Fee.Currency))
	amount.SetText(strconv.FormatInt(subject.Fee.Amount.Cents(), 10))
	if subject.Fee.Description != "" {
		fee.CreateElement("description").SetText(subject.Fee.Description)
	}
}

func appendName(parent *etree.Element, shopper entities.Shopper) {
	name := parent.CreateElement("name")
	name.CreateElement("first").SetText(shopper.FirstName)
	if shopper.Infix != "" {
		name.CreateElement("middle").SetText(shopper.Infix)
	}
	name.CreateElement("last").SetText(shopper.LastName)
}

// finish appends the integrationInfo trailer and serializes the document.
func finish(doc *etree.Document, root *etree.Element, cfg BuildConfig) ([]byte, error) {
	info := root.CreateElement("integrationInfo")
	info.CreateElement("webshopPlugin").SetText(pluginName)
	info.CreateElement("webshopPluginVersion").SetText(cfg.PluginVersion)
	info.CreateElement("integratorName").SetText(integratorName)
	info.CreateElement("programmingLanguage").SetText("Go " + runtime.Version())
	info.CreateElement("operatingSystem").SetText(runtime.GOOS + "/" + runtime.GOARCH)
	info.CreateElement("ddpXsdVersion").SetText(cfg.xsdVersion())

	return doc.WriteToBytes()
}

func shopperID(shopper entities.Shopper) string {
	if shopper.ID != "" {
		return shopper.ID
	}
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func receiptText(description string) string {
	runes := []rune(description)
	if len(runes) > receiptTextLimit {
		return string(runes[:receiptTextLimit])
	}
	return description
}

func currencyOr(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}
