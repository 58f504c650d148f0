package docdata

// Endpoints for the Docdata Order API 1.3 and the hosted payment menu.
const (
	serviceLiveURL = "https://secure.docdatapayments.com/ps/services/paymentservice/1_3"
	serviceTestURL = "https://testsecure.docdatapayments.com/ps/services/paymentservice/1_3"

	menuLiveURL = "https://secure.docdatapayments.com/ps/menu"
	menuTestURL = "https://testsecure.docdatapayments.com/ps/menu"
)

func serviceURL(test bool) string {
	if test {
		return serviceTestURL
	}
	return serviceLiveURL
}

func menuURL(test bool) string {
	if test {
		return menuTestURL
	}
	return menuLiveURL
}
