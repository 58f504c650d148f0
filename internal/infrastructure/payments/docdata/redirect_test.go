package docdata

import (
	"errors"
	"strings"
	"testing"

	"docdata_gateway/internal/domain/entities"
)

func TestRedirectURL(t *testing.T) {
	t.Run("base parameters in order", func(t *testing.T) {
		order := testCreateOrder(t)

		got, err := RedirectURL(order, "KEY-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "https://testsecure.docdatapayments.com/ps/menu" +
			"?command=show_payment_cluster&merchant_name=shop&client_language=nl&payment_cluster_key=KEY-1"
		if got != want {
			t.Fatalf("url mismatch:\n got %s\nwant %s", got, want)
		}
	})

	t.Run("live url", func(t *testing.T) {
		got, err := RedirectURL(testCreateOrder(t), "KEY-1", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "https://secure.docdatapayments.com/ps/menu?") {
			t.Fatalf("expected live menu url, got %s", got)
		}
	})

	t.Run("subject merchant name wins", func(t *testing.T) {
		order := testCreateOrder(t)
		order.SubjectMerchant = &entities.SubjectMerchant{Name: "subshop", Token: "token-1"}

		got, err := RedirectURL(order, "KEY-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "merchant_name=subshop") {
			t.Fatalf("expected subject merchant name, got %s", got)
		}
	})

	t.Run("ideal preselection", func(t *testing.T) {
		order := testCreateOrder(t)
		order.PaymentMethod = entities.PaymentMethodIdeal
		order.IssuerID = "INGBNL2A"

		got, err := RedirectURL(order, "KEY-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(got, "&default_pm=IDEAL&default_act=true&ideal_issuer_id=INGBNL2A") {
			t.Fatalf("unexpected ideal parameters: %s", got)
		}
	})

	t.Run("ideal without issuer", func(t *testing.T) {
		order := testCreateOrder(t)
		order.PaymentMethod = entities.PaymentMethodIdeal

		got, err := RedirectURL(order, "KEY-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(got, "&default_pm=IDEAL&default_act=true") {
			t.Fatalf("unexpected ideal parameters: %s", got)
		}
	})

	t.Run("paypal preselection", func(t *testing.T) {
		order := testCreateOrder(t)
		order.PaymentMethod = entities.PaymentMethodPayPal

		got, err := RedirectURL(order, "KEY-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(got, "&default_pm=PAYPAL_EXPRESS_CHECKOUT&default_act=true") {
			t.Fatalf("unexpected paypal parameters: %s", got)
		}
	})

	t.Run("card preselection has no default act", func(t *testing.T) {
		order := testCreateOrder(t)
		order.PaymentMethod = entities.PaymentMethodVisa

		got, err := RedirectURL(order, "KEY-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(got, "&default_pm=VISA") {
			t.Fatalf("unexpected visa parameters: %s", got)
		}
		if strings.Contains(got, "default_act") {
			t.Fatalf("default_act must be absent for cards: %s", got)
		}
	})

	t.Run("return url variants", func(t *testing.T) {
		order := testCreateOrder(t)
		order.ReturnURL = "https://shop.example.com/return?ref=abc"

		got, err := RedirectURL(order, "KEY-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for param, status := range map[string]string{
			"return_url_success":  "success",
			"return_url_canceled": "cancelled",
			"return_url_pending":  "pending",
			"return_url_error":    "error",
		} {
			want := param + "=" + "https%3A%2F%2Fshop.example.com%2Freturn%3Fref%3Dabc%26status%3D" + status
			if !strings.Contains(got, want) {
				t.Fatalf("missing %s variant in %s", param, got)
			}
		}
	})

	t.Run("invalid return url", func(t *testing.T) {
		order := testCreateOrder(t)
		order.ReturnURL = "://not-a-url"

		_, err := RedirectURL(order, "KEY-1", true)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}
