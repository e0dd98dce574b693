package dto

type CheckoutResponse struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

// WebhookNotification is the Mercado Pago IPN payload. Only payment
// notifications are acted on; everything else is acknowledged and dropped.
type WebhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type SubscriptionStatus struct {
	Plan   string `json:"plan"`
	Active bool   `json:"active"`
}
