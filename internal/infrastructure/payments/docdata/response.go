package docdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"docdata_gateway/internal/domain/entities"
)

// Authorization lifecycle states reported by the gateway. The list is not
// exhaustive; the gateway may add states between schema minor versions.
const (
	AuthorizationNew        = "NEW"
	AuthorizationStarted    = "STARTED"
	AuthorizationAuthorized = "AUTHORIZED"
	AuthorizationCanceled   = "CANCELED"
)

// result is the success/error discriminator shared by all operation results.
// A functional failure reported by the gateway carries the code and message
// of the first error entry, surfaced unchanged.
type result struct {
	success    bool
	errCode    string
	errMessage string
}

func (r result) IsSuccess() bool { return r.success }

func (r result) IsError() bool { return !r.success }

// ErrorCode is the gateway-defined code of the reported failure; empty on success.
func (r result) ErrorCode() string { return r.errCode }

// ErrorMessage is the human-readable message of the reported failure; empty on success.
func (r result) ErrorMessage() string { return r.errMessage }

// CreateResult is the outcome of a create operation.
type CreateResult struct {
	result
	// OrderKey is the gateway-generated key identifying the created order.
	OrderKey string
}

// ParseCreateResponse interprets the response document of a create call.
func ParseCreateResponse(body []byte) (*CreateResult, error) {
	resp, err := responseElement(body, "create", "createResponse")
	if err != nil {
		return nil, err
	}
	if s := childElement(resp, "createSuccess"); s != nil {
		return &CreateResult{result: success(), OrderKey: childText(s, "key")}, nil
	}
	if e := childElement(resp, "createErrors"); e != nil {
		return &CreateResult{result: failure(e)}, nil
	}
	return nil, &ProtocolError{Op: "create", Reason: "neither createSuccess nor createErrors present"}
}

// StartResult is the outcome of a start operation.
type StartResult struct {
	result
	// PaymentID and PaymentStatus come from the wrapped payment response;
	// both stay empty when the gateway omits it.
	PaymentID     string
	PaymentStatus string
}

// ParseStartResponse interprets the response document of a start call.
func ParseStartResponse(body []byte) (*StartResult, error) {
	resp, err := responseElement(body, "start", "startResponse")
	if err != nil {
		return nil, err
	}
	if s := childElement(resp, "startSuccess"); s != nil {
		res := &StartResult{result: success()}
		if pr := childElement(s, "paymentResponse"); pr != nil {
			if ps := childElement(pr, "paymentSuccess"); ps != nil {
				res.PaymentID = childText(ps, "id")
				res.PaymentStatus = childText(ps, "status")
			}
		}
		return res, nil
	}
	if e := childElement(resp, "startErrors"); e != nil {
		return &StartResult{result: failure(e)}, nil
	}
	return nil, &ProtocolError{Op: "start", Reason: "neither startSuccess nor startErrors present"}
}

// ApproximateTotals are the monetary figures of the status report, converted
// from minor units.
type ApproximateTotals struct {
	Registered       entities.Amount
	ShopperPending   entities.Amount
	AcquirerPending  entities.Amount
	AcquirerApproved entities.Amount
	Captured         entities.Amount
	Refunded         entities.Amount
	Reversed         entities.Amount
	ChargedBack      entities.Amount
}

// StatusResult is the outcome of an extended status operation. When the
// report carries multiple payment attempts, the fields below describe the
// one with the numerically greatest payment id.
type StatusResult struct {
	result

	PaymentID     string
	PaymentMethod entities.PaymentMethod

	AuthorizationStatus   string
	AuthorizationAmount   entities.Amount
	AuthorizationCurrency string

	// ExchangedTo is the currency the totals were exchanged to, if any.
	ExchangedTo string

	// Consumer account details, only filled for iDEAL and SEPA direct debit.
	ConsumerName  string
	ConsumerIBAN  string
	ConsumerBIC   string
	MandateNumber string

	Totals ApproximateTotals
}

// ParseStatusResponse interprets the response document of an extended status call.
func ParseStatusResponse(body []byte) (*StatusResult, error) {
	resp, err := responseElement(body, "statusExtended", "extendedStatusResponse")
	if err != nil {
		return nil, err
	}
	if s := childElement(resp, "statusSuccess"); s != nil {
		report := childElement(s, "report")
		if report == nil {
			return nil, &ProtocolError{Op: "statusExtended", Reason: "statusSuccess without report"}
		}

		res := &StatusResult{result: success()}

		if payment := newestPayment(report); payment != nil {
			res.PaymentID = childText(payment, "id")
			res.PaymentMethod = entities.PaymentMethod(childText(payment, "paymentMethod"))
			if auth := childElement(payment, "authorization"); auth != nil {
				res.AuthorizationStatus = childText(auth, "status")
				if amount := childElement(auth, "amount"); amount != nil {
					res.AuthorizationAmount = centsAmount(amount.Text())
					res.AuthorizationCurrency = amount.SelectAttrValue("currency", "")
				}
			}
			extractConsumer(res, payment)
		}

		if totals := childElement(report, "approximateTotals"); totals != nil {
			res.ExchangedTo = totals.SelectAttrValue("exchangedTo", "")
			res.Totals = ApproximateTotals{
				Registered:       centsAmount(childText(totals, "totalRegistered")),
				ShopperPending:   centsAmount(childText(totals, "totalShopperPending")),
				AcquirerPending:  centsAmount(childText(totals, "totalAcquirerPending")),
				AcquirerApproved: centsAmount(childText(totals, "totalAcquirerApproved")),
				Captured:         centsAmount(childText(totals, "totalCaptured")),
				Refunded:         centsAmount(childText(totals, "totalRefunded")),
				Reversed:         centsAmount(childText(totals, "totalReversed")),
				ChargedBack:      centsAmount(childText(totals, "totalChargedback")),
			}
		}

		return res, nil
	}
	if e := childElement(resp, "statusErrors"); e != nil {
		return &StatusResult{result: failure(e)}, nil
	}
	return nil, &ProtocolError{Op: "statusExtended", Reason: "neither statusSuccess nor statusErrors present"}
}

// Paid reports whether the order is settled: the registered total matches the
// captured total, or matches the acquirer-approved total. The latter counts
// even when the captured total differs, mirroring the gateway's settlement
// semantics for acquirer-approved methods.
func (r *StatusResult) Paid() bool {
	return r.Totals.Registered.Equal(r.Totals.Captured) ||
		r.Totals.Registered.Equal(r.Totals.AcquirerApproved)
}

// Refunded reports whether the full registered total was refunded.
func (r *StatusResult) Refunded() bool {
	return r.Totals.Registered.Equal(r.Totals.Refunded)
}

// ChargedBack reports whether the full registered total was charged back.
func (r *StatusResult) ChargedBack() bool {
	return r.Totals.Registered.Equal(r.Totals.ChargedBack)
}

// Reversed reports whether the full registered total was reversed.
func (r *StatusResult) Reversed() bool {
	return r.Totals.Registered.Equal(r.Totals.Reversed)
}

// Cancelled reports whether the payment authorization was canceled.
func (r *StatusResult) Cancelled() bool {
	return r.AuthorizationStatus == AuthorizationCanceled
}

// Started reports whether the payment is still underway: a NEW or STARTED
// authorization, or nothing captured nor acquirer-approved yet. A cancelled
// order is never started, regardless of totals.
func (r *StatusResult) Started() bool {
	if r.Cancelled() {
		return false
	}
	if r.AuthorizationStatus == AuthorizationNew || r.AuthorizationStatus == AuthorizationStarted {
		return true
	}
	return r.Totals.Captured.IsZero() && r.Totals.AcquirerApproved.IsZero()
}

// RefundResult is the outcome of a refund operation.
type RefundResult struct {
	result
}

// ParseRefundResponse interprets the response document of a refund call.
func ParseRefundResponse(body []byte) (*RefundResult, error) {
	resp, err := responseElement(body, "refund", "refundResponse")
	if err != nil {
		return nil, err
	}
	if s := childElement(resp, "refundSuccess"); s != nil {
		return &RefundResult{result: success()}, nil
	}
	if e := childElement(resp, "refundErrors"); e != nil {
		return &RefundResult{result: failure(e)}, nil
	}
	return nil, &ProtocolError{Op: "refund", Reason: "neither refundSuccess nor refundErrors present"}
}

// ListPaymentMethodsResult is the outcome of a list payment methods operation.
type ListPaymentMethodsResult struct {
	result
	Methods []entities.PaymentMethodDetails
}

// ParseListPaymentMethodsResponse interprets the response document of a list
// payment methods call.
func ParseListPaymentMethodsResponse(body []byte) (*ListPaymentMethodsResult, error) {
	resp, err := responseElement(body, "listPaymentMethods", "listPaymentMethodsResponse")
	if err != nil {
		return nil, err
	}
	if s := childElement(resp, "listPaymentMethodsSuccess"); s != nil {
		res := &ListPaymentMethodsResult{result: success()}
		for _, pm := range childElements(s, "paymentMethod") {
			details := entities.PaymentMethodDetails{
				Method: entities.PaymentMethod(childText(pm, "name")),
			}
			if issuers := childElement(pm, "issuers"); issuers != nil {
				details.Issuers = make(map[string]string)
				for _, issuer := range childElements(issuers, "issuer") {
					details.Issuers[issuer.SelectAttrValue("id", "")] = strings.TrimSpace(issuer.Text())
				}
			}
			res.Methods = append(res.Methods, details)
		}
		return res, nil
	}
	if e := childElement(resp, "listPaymentMethodsErrors"); e != nil {
		return &ListPaymentMethodsResult{result: failure(e)}, nil
	}
	return nil, &ProtocolError{Op: "listPaymentMethods", Reason: "neither listPaymentMethodsSuccess nor listPaymentMethodsErrors present"}
}

// newestPayment selects the payment record with the numerically greatest id.
// Payment ids are decimal strings, so a string comparison would misorder them
// once the id length grows.
func newestPayment(report *etree.Element) *etree.Element {
	var selected *etree.Element
	best := int64(-1)
	for _, payment := range childElements(report, "payment") {
		id, _ := strconv.ParseInt(strings.TrimSpace(childText(payment, "id")), 10, 64)
		if id > best {
			best = id
			selected = payment
		}
	}
	return selected
}

// extractConsumer pulls the shopper bank account details out of the extended
// block. The nesting differs per payment method; other methods carry none.
func extractConsumer(res *StatusResult, payment *etree.Element) {
	extended := childElement(payment, "extended")
	if extended == nil {
		return
	}

	switch res.PaymentMethod {
	case entities.PaymentMethodIdeal:
		info := childElement(extended, "iDealPaymentInfo")
		if info == nil {
			return
		}
		res.ConsumerName = childText(info, "holderName")
		if account := childElement(info, "shopperBankAccount"); account != nil {
			res.ConsumerIBAN = childText(account, "iban")
			res.ConsumerBIC = childText(account, "bic")
		}
	case entities.PaymentMethodSEPADirectDebit:
		info := childElement(extended, "sepaDirectDebitPaymentInfo")
		if info == nil {
			return
		}
		res.ConsumerIBAN = childText(info, "iban")
		res.ConsumerBIC = childText(info, "bic")
		res.MandateNumber = childText(info, "mandateNumber")
	}
}

func success() result {
	return result{success: true}
}

// failure extracts the first error entry of an *Errors node.
func failure(errors *etree.Element) result {
	r := result{}
	if e := childElement(errors, "error"); e != nil {
		r.errCode = e.SelectAttrValue("code", "")
		r.errMessage = strings.TrimSpace(e.Text())
	}
	return r
}

// responseElement parses the raw body and locates the operation's response
// element, anywhere in the tree so a full SOAP envelope works as input too.
func responseElement(body []byte, op, tag string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, &ProtocolError{Op: op, Reason: fmt.Sprintf("malformed xml: %v", err)}
	}
	root := doc.Root()
	if root == nil {
		return nil, &ProtocolError{Op: op, Reason: "empty document"}
	}
	if root.Tag == tag {
		return root, nil
	}
	if el := findElement(root, tag); el != nil {
		return el, nil
	}
	return nil, &ProtocolError{Op: op, Reason: tag + " element not found"}
}

// findElement walks the tree depth-first and returns the first element with
// the given local tag, ignoring namespace prefixes.
func findElement(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func childElement(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

func childElements(el *etree.Element, tag string) []*etree.Element {
	var matches []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			matches = append(matches, child)
		}
	}
	return matches
}

func childText(el *etree.Element, tag string) string {
	if c := childElement(el, tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

func centsAmount(s string) entities.Amount {
	cents, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return entities.AmountFromCents(cents)
}
