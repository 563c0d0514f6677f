package checkoutapplepay

import "encoding/json"

// Payloads mirror the Apple Pay JS session delegate callbacks.

type ContactChangeEvent struct {
	ShippingContact ShippingContact `json:"shippingContact" validate:"required"`
}

type ShippingContact struct {
	CountryCode string `json:"countryCode" validate:"required"`
}

type DeliveryChangeEvent struct {
	ShippingMethod SelectedShippingMethod `json:"shippingMethod" validate:"required"`
}

type SelectedShippingMethod struct {
	Identifier string `json:"identifier" validate:"required"`
}

type ApproveEvent struct {
	Token PaymentToken `json:"token" validate:"required"`
}

// PaymentToken keeps the opaque parts raw, they travel base64-encoded to the
// settlement side.
type PaymentToken struct {
	TransactionIdentifier string          `json:"transactionIdentifier" validate:"required"`
	PaymentData           json.RawMessage `json:"paymentData,omitempty"`
	PaymentMethod         json.RawMessage `json:"paymentMethod,omitempty"`
}

type ShippingMethod struct {
	Identifier string  `json:"identifier"`
	Label      string  `json:"label"`
	Amount     float64 `json:"amount"`
	Detail     string  `json:"detail"`
}

type NewTotal struct {
	Label  string  `json:"label,omitempty"`
	Amount float64 `json:"amount"`
}

type ApplePayError struct {
	Code         string `json:"code"`
	ContactField string `json:"contactField"`
	Message      string `json:"message"`
}

type StartResponse struct {
	AttemptUID      string           `json:"attemptUid"`
	MerchantSession json.RawMessage  `json:"merchantSession"`
	CurrencyCode    string           `json:"currencyCode"`
	Label           string           `json:"label"`
	ShippingMethods []ShippingMethod `json:"shippingMethods"`
}

type ContactChangeResponse struct {
	NewTotal           NewTotal         `json:"newTotal"`
	NewShippingMethods []ShippingMethod `json:"newShippingMethods,omitempty"`
	Errors             []ApplePayError  `json:"errors,omitempty"`
}

type DeliveryChangeResponse struct {
	NewTotal NewTotal `json:"newTotal"`
}

type ApproveResponse struct {
	RedirectURL string `json:"redirectUrl"`
}
