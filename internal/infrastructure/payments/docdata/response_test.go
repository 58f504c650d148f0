package docdata

import (
	"errors"
	"testing"
)

func TestParseCreateResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		body := `<createResponse xmlns="http://www.docdatapayments.com/services/paymentservice/1_3/">
			<createSuccess>
				<success code="SUCCESS">Operation successful.</success>
				<key>A6037F2D4A975A6A7D64D4AE7FE5B0A4</key>
			</createSuccess>
		</createResponse>`

		res, err := ParseCreateResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsSuccess() || res.IsError() {
			t.Fatal("expected success result")
		}
		if res.OrderKey != "A6037F2D4A975A6A7D64D4AE7FE5B0A4" {
			t.Fatalf("unexpected order key: %s", res.OrderKey)
		}
	})

	t.Run("functional error", func(t *testing.T) {
		body := `<createResponse>
			<createErrors>
				<error code="REQUEST_DATA_INCORRECT">Merchant order reference is not unique.</error>
			</createErrors>
		</createResponse>`

		res, err := ParseCreateResponse([]byte(body))
		if err != nil {
			t.Fatalf("functional errors must not be Go errors: %v", err)
		}
		if !res.IsError() {
			t.Fatal("expected error result")
		}
		if res.ErrorCode() != "REQUEST_DATA_INCORRECT" {
			t.Fatalf("unexpected error code: %s", res.ErrorCode())
		}
		if res.ErrorMessage() != "Merchant order reference is not unique." {
			t.Fatalf("unexpected error message: %s", res.ErrorMessage())
		}
	})

	t.Run("soap envelope", func(t *testing.T) {
		body := `<?xml version="1.0" encoding="UTF-8"?>
		<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
			<S:Body>
				<createResponse xmlns="http://www.docdatapayments.com/services/paymentservice/1_3/">
					<createSuccess><key>KEY-1</key></createSuccess>
				</createResponse>
			</S:Body>
		</S:Envelope>`

		res, err := ParseCreateResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.OrderKey != "KEY-1" {
			t.Fatalf("unexpected order key: %s", res.OrderKey)
		}
	})

	t.Run("malformed xml", func(t *testing.T) {
		_, err := ParseCreateResponse([]byte("<createResponse"))
		var protocolErr *ProtocolError
		if !errors.As(err, &protocolErr) {
			t.Fatalf("expected ProtocolError, got %v", err)
		}
	})

	t.Run("neither success nor errors", func(t *testing.T) {
		_, err := ParseCreateResponse([]byte("<createResponse></createResponse>"))
		var protocolErr *ProtocolError
		if !errors.As(err, &protocolErr) {
			t.Fatalf("expected ProtocolError, got %v", err)
		}
	})

	t.Run("wrong response element", func(t *testing.T) {
		_, err := ParseCreateResponse([]byte("<startResponse><startSuccess/></startResponse>"))
		var protocolErr *ProtocolError
		if !errors.As(err, &protocolErr) {
			t.Fatalf("expected ProtocolError, got %v", err)
		}
	})
}

func TestParseStartResponse(t *testing.T) {
	t.Run("success with payment", func(t *testing.T) {
		body := `<startResponse>
			<startSuccess>
				<success code="SUCCESS">Operation successful.</success>
				<paymentResponse>
					<paymentSuccess>
						<id>4890053</id>
						<status>AUTHORIZED</status>
					</paymentSuccess>
				</paymentResponse>
			</startSuccess>
		</startResponse>`

		res, err := ParseStartResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsSuccess() {
			t.Fatal("expected success result")
		}
		if res.PaymentID != "4890053" || res.PaymentStatus != "AUTHORIZED" {
			t.Fatalf("unexpected payment: %s %s", res.PaymentID, res.PaymentStatus)
		}
	})

	t.Run("success without payment response", func(t *testing.T) {
		body := `<startResponse><startSuccess><success code="SUCCESS">ok</success></startSuccess></startResponse>`

		res, err := ParseStartResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PaymentID != "" || res.PaymentStatus != "" {
			t.Fatalf("expected empty payment fields, got %s %s", res.PaymentID, res.PaymentStatus)
		}
	})

	t.Run("functional error", func(t *testing.T) {
		body := `<startResponse>
			<startErrors>
				<error code="UNKNOWN_ORDER">Order could not be found with the given key.</error>
			</startErrors>
		</startResponse>`

		res, err := ParseStartResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ErrorCode() != "UNKNOWN_ORDER" {
			t.Fatalf("unexpected error code: %s", res.ErrorCode())
		}
	})
}

func statusBody(payments string, totals string) string {
	return `<extendedStatusResponse>
		<statusSuccess>
			<success code="SUCCESS">Operation successful.</success>
			<report>` + payments + totals + `</report>
		</statusSuccess>
	</extendedStatusResponse>`
}

const paidTotals = `<approximateTotals exchangedTo="EUR">
	<totalRegistered>2500</totalRegistered>
	<totalShopperPending>0</totalShopperPending>
	<totalAcquirerPending>0</totalAcquirerPending>
	<totalAcquirerApproved>0</totalAcquirerApproved>
	<totalCaptured>2500</totalCaptured>
	<totalRefunded>0</totalRefunded>
	<totalReversed>0</totalReversed>
	<totalChargedback>0</totalChargedback>
</approximateTotals>`

func TestParseStatusResponse(t *testing.T) {
	t.Run("paid ideal payment", func(t *testing.T) {
		payment := `<payment>
			<id>4890053</id>
			<paymentMethod>IDEAL</paymentMethod>
			<authorization>
				<status>AUTHORIZED</status>
				<amount currency="EUR">2500</amount>
			</authorization>
			<extended>
				<iDealPaymentInfo>
					<holderName>P Paulusma</holderName>
					<shopperBankAccount>
						<iban>NL91ABNA0417164300</iban>
						<bic>ABNANL2A</bic>
					</shopperBankAccount>
				</iDealPaymentInfo>
			</extended>
		</payment>`

		res, err := ParseStatusResponse([]byte(statusBody(payment, paidTotals)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsSuccess() {
			t.Fatal("expected success result")
		}
		if res.PaymentID != "4890053" || res.PaymentMethod != "IDEAL" {
			t.Fatalf("unexpected payment: %s %s", res.PaymentID, res.PaymentMethod)
		}
		if res.AuthorizationStatus != "AUTHORIZED" {
			t.Fatalf("unexpected authorization status: %s", res.AuthorizationStatus)
		}
		if res.AuthorizationAmount.String() != "25.00" || res.AuthorizationCurrency != "EUR" {
			t.Fatalf("unexpected authorization amount: %s %s", res.AuthorizationAmount, res.AuthorizationCurrency)
		}
		if res.ExchangedTo != "EUR" {
			t.Fatalf("unexpected exchangedTo: %s", res.ExchangedTo)
		}
		if res.ConsumerName != "P Paulusma" || res.ConsumerIBAN != "NL91ABNA0417164300" || res.ConsumerBIC != "ABNANL2A" {
			t.Fatalf("unexpected consumer details: %s %s %s", res.ConsumerName, res.ConsumerIBAN, res.ConsumerBIC)
		}
		if res.Totals.Registered.String() != "25.00" || res.Totals.Captured.String() != "25.00" {
			t.Fatalf("unexpected totals: %+v", res.Totals)
		}
		if !res.Paid() {
			t.Fatal("expected paid")
		}
		if res.Started() || res.Cancelled() || res.Refunded() || res.ChargedBack() || res.Reversed() {
			t.Fatal("expected only paid to hold")
		}
	})

	t.Run("acquirer approved counts as paid", func(t *testing.T) {
		totals := `<approximateTotals>
			<totalRegistered>2500</totalRegistered>
			<totalShopperPending>0</totalShopperPending>
			<totalAcquirerPending>0</totalAcquirerPending>
			<totalAcquirerApproved>2500</totalAcquirerApproved>
			<totalCaptured>0</totalCaptured>
			<totalRefunded>0</totalRefunded>
			<totalReversed>0</totalReversed>
			<totalChargedback>0</totalChargedback>
		</approximateTotals>`
		payment := `<payment><id>1</id><paymentMethod>AMEX</paymentMethod>
			<authorization><status>AUTHORIZED</status></authorization></payment>`

		res, err := ParseStatusResponse([]byte(statusBody(payment, totals)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Paid() {
			t.Fatal("acquirer approved total must count as paid")
		}
		if res.Started() {
			t.Fatal("an acquirer approved payment is no longer started")
		}
	})

	t.Run("newest of multiple payments wins", func(t *testing.T) {
		payments := `<payment>
			<id>9</id>
			<paymentMethod>IDEAL</paymentMethod>
			<authorization><status>CANCELED</status></authorization>
		</payment>
		<payment>
			<id>10</id>
			<paymentMethod>VISA</paymentMethod>
			<authorization><status>AUTHORIZED</status></authorization>
		</payment>`

		res, err := ParseStatusResponse([]byte(statusBody(payments, paidTotals)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// "9" sorts after "10" as a string; numeric comparison must win.
		if res.PaymentID != "10" || res.PaymentMethod != "VISA" {
			t.Fatalf("unexpected payment selected: %s %s", res.PaymentID, res.PaymentMethod)
		}
		if res.Cancelled() {
			t.Fatal("cancelled must reflect the newest payment")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		totals := `<approximateTotals>
			<totalRegistered>2500</totalRegistered>
			<totalShopperPending>0</totalShopperPending>
			<totalAcquirerPending>0</totalAcquirerPending>
			<totalAcquirerApproved>0</totalAcquirerApproved>
			<totalCaptured>0</totalCaptured>
			<totalRefunded>0</totalRefunded>
			<totalReversed>0</totalReversed>
			<totalChargedback>0</totalChargedback>
		</approximateTotals>`
		payment := `<payment><id>1</id><paymentMethod>IDEAL</paymentMethod>
			<authorization><status>CANCELED</status></authorization></payment>`

		res, err := ParseStatusResponse([]byte(statusBody(payment, totals)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Cancelled() {
			t.Fatal("expected cancelled")
		}
		if res.Started() {
			t.Fatal("a cancelled order is never started")
		}
	})

	t.Run("started without payment", func(t *testing.T) {
		totals := `<approximateTotals>
			<totalRegistered>2500</totalRegistered>
			<totalShopperPending>0</totalShopperPending>
			<totalAcquirerPending>0</totalAcquirerPending>
			<totalAcquirerApproved>0</totalAcquirerApproved>
			<totalCaptured>0</totalCaptured>
			<totalRefunded>0</totalRefunded>
			<totalReversed>0</totalReversed>
			<totalChargedback>0</totalChargedback>
		</approximateTotals>`

		res, err := ParseStatusResponse([]byte(statusBody("", totals)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PaymentID != "" {
			t.Fatalf("expected no payment, got %s", res.PaymentID)
		}
		if !res.Started() {
			t.Fatal("nothing captured nor approved means still started")
		}
		if res.Paid() {
			t.Fatal("expected not paid")
		}
	})

	t.Run("refunded", func(t *testing.T) {
		totals := `<approximateTotals>
			<totalRegistered>2500</totalRegistered>
			<totalShopperPending>0</totalShopperPending>
			<totalAcquirerPending>0</totalAcquirerPending>
			<totalAcquirerApproved>0</totalAcquirerApproved>
			<totalCaptured>2500</totalCaptured>
			<totalRefunded>2500</totalRefunded>
			<totalReversed>0</totalReversed>
			<totalChargedback>0</totalChargedback>
		</approximateTotals>`
		payment := `<payment><id>1</id><paymentMethod>VISA</paymentMethod>
			<authorization><status>AUTHORIZED</status></authorization></payment>`

		res, err := ParseStatusResponse([]byte(statusBody(payment, totals)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Refunded() {
			t.Fatal("expected refunded")
		}
	})

	t.Run("sepa direct debit consumer details", func(t *testing.T) {
		payment := `<payment>
			<id>1</id>
			<paymentMethod>SEPA_DIRECT_DEBIT</paymentMethod>
			<authorization><status>AUTHORIZED</status></authorization>
			<extended>
				<sepaDirectDebitPaymentInfo>
					<iban>NL91ABNA0417164300</iban>
					<bic>ABNANL2A</bic>
					<mandateNumber>mdt-1234</mandateNumber>
				</sepaDirectDebitPaymentInfo>
			</extended>
		</payment>`

		res, err := ParseStatusResponse([]byte(statusBody(payment, paidTotals)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ConsumerIBAN != "NL91ABNA0417164300" || res.ConsumerBIC != "ABNANL2A" {
			t.Fatalf("unexpected consumer account: %s %s", res.ConsumerIBAN, res.ConsumerBIC)
		}
		if res.MandateNumber != "mdt-1234" {
			t.Fatalf("unexpected mandate number: %s", res.MandateNumber)
		}
	})

	t.Run("functional error", func(t *testing.T) {
		body := `<extendedStatusResponse>
			<statusErrors>
				<error code="UNKNOWN_ORDER">Order could not be found with the given key.</error>
			</statusErrors>
		</extendedStatusResponse>`

		res, err := ParseStatusResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ErrorCode() != "UNKNOWN_ORDER" {
			t.Fatalf("unexpected error code: %s", res.ErrorCode())
		}
	})

	t.Run("success without report", func(t *testing.T) {
		body := `<extendedStatusResponse><statusSuccess/></extendedStatusResponse>`

		_, err := ParseStatusResponse([]byte(body))
		var protocolErr *ProtocolError
		if !errors.As(err, &protocolErr) {
			t.Fatalf("expected ProtocolError, got %v", err)
		}
	})
}

func TestParseRefundResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		body := `<refundResponse><refundSuccess><success code="SUCCESS">ok</success></refundSuccess></refundResponse>`

		res, err := ParseRefundResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsSuccess() {
			t.Fatal("expected success result")
		}
	})

	t.Run("functional error", func(t *testing.T) {
		body := `<refundResponse>
			<refundErrors>
				<error code="REQUEST_DATA_INCORRECT">Refund amount exceeds captured amount.</error>
			</refundErrors>
		</refundResponse>`

		res, err := ParseRefundResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ErrorCode() != "REQUEST_DATA_INCORRECT" {
			t.Fatalf("unexpected error code: %s", res.ErrorCode())
		}
	})
}

func TestParseListPaymentMethodsResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		body := `<listPaymentMethodsResponse>
			<listPaymentMethodsSuccess>
				<success code="SUCCESS">Operation successful.</success>
				<paymentMethod>
					<name>IDEAL</name>
					<issuers>
						<issuer id="INGBNL2A">ING</issuer>
						<issuer id="RABONL2U">Rabobank</issuer>
					</issuers>
				</paymentMethod>
				<paymentMethod>
					<name>VISA</name>
				</paymentMethod>
			</listPaymentMethodsSuccess>
		</listPaymentMethodsResponse>`

		res, err := ParseListPaymentMethodsResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Methods) != 2 {
			t.Fatalf("expected 2 methods, got %d", len(res.Methods))
		}
		ideal := res.Methods[0]
		if ideal.Method != "IDEAL" {
			t.Fatalf("unexpected method: %s", ideal.Method)
		}
		if ideal.Issuers["INGBNL2A"] != "ING" || ideal.Issuers["RABONL2U"] != "Rabobank" {
			t.Fatalf("unexpected issuers: %v", ideal.Issuers)
		}
		if res.Methods[1].Method != "VISA" || res.Methods[1].Issuers != nil {
			t.Fatalf("unexpected second method: %+v", res.Methods[1])
		}
	})

	t.Run("functional error", func(t *testing.T) {
		body := `<listPaymentMethodsResponse>
			<listPaymentMethodsErrors>
				<error code="UNKNOWN_ORDER">Order could not be found with the given key.</error>
			</listPaymentMethodsErrors>
		</listPaymentMethodsResponse>`

		res, err := ParseListPaymentMethodsResponse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ErrorCode() != "UNKNOWN_ORDER" {
			t.Fatalf("unexpected error code: %s", res.ErrorCode())
		}
	})
}
