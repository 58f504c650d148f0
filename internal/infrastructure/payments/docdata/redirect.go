package docdata

import (
	"fmt"
	"net/url"
	"strings"

	"docdata_gateway/internal/domain/entities"
)

// RedirectURL builds the hosted payment menu URL where the shopper completes
// payment of a created order, in the documented parameter order.
func RedirectURL(order entities.CreateOrder, orderKey string, test bool) (string, error) {
	merchantName := order.Merchant.Name
	if order.SubjectMerchant != nil {
		merchantName = order.SubjectMerchant.Name
	}

	params := []queryParam{
		{"command", "show_payment_cluster"},
		{"merchant_name", merchantName},
		{"client_language", order.Shopper.Language},
		{"payment_cluster_key", orderKey},
	}

	if order.PaymentMethod != "" {
		params = append(params, queryParam{"default_pm", string(order.PaymentMethod)})
		switch order.PaymentMethod {
		case entities.PaymentMethodIdeal:
			params = append(params, queryParam{"default_act", "true"})
			if order.IssuerID != "" {
				params = append(params, queryParam{"ideal_issuer_id", order.IssuerID})
			}
		case entities.PaymentMethodPayPal:
			params = append(params, queryParam{"default_act", "true"})
		}
	}

	if order.ReturnURL != "" {
		for _, variant := range []queryParam{
			{"return_url_success", "success"},
			{"return_url_canceled", "cancelled"},
			{"return_url_pending", "pending"},
			{"return_url_error", "error"},
		} {
			returnURL, err := statusReturnURL(order.ReturnURL, variant.value)
			if err != nil {
				return "", err
			}
			params = append(params, queryParam{variant.key, returnURL})
		}
	}

	return menuURL(test) + "?" + encodeParams(params), nil
}

type queryParam struct {
	key   string
	value string
}

// encodeParams keeps insertion order; url.Values.Encode would sort the keys.
func encodeParams(params []queryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// statusReturnURL appends or overwrites the status parameter on the caller's
// return URL, keeping its existing query parameters intact.
func statusReturnURL(rawURL, status string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &ValidationError{Op: "redirect", Reason: fmt.Sprintf("invalid return url %q: %v", rawURL, err)}
	}
	q := u.Query()
	q.Set("status", status)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
