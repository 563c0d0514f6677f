package checkoutgooglepay

import "github.com/MarcGrol/expresscheckout/services/shopapi"

// Payloads mirror the Google Pay hosted-frame protocol.

type InitEvent struct {
	Mode      string `json:"mode" validate:"required"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type InitResult struct {
	AttemptUID                string                   `json:"attemptUid"`
	DefaultShippingOptions    ShippingOptionParameters `json:"defaultShippingOptions"`
	ShippingAddressParameters AddressParameters        `json:"shippingAddressParameters"`
	TransactionDetails        TransactionDetails       `json:"transactionDetails"`
}

type ShippingOptionParameters struct {
	DefaultSelectedOptionID string           `json:"defaultSelectedOptionId"`
	ShippingOptions         []ShippingOption `json:"shippingOptions"`
}

type ShippingOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type AddressParameters struct {
	AllowedCountryCodes []string `json:"allowedCountryCodes"`
	PhoneNumberRequired bool     `json:"phoneNumberRequired"`
}

type TransactionDetails struct {
	CurrencyCode string  `json:"currencyCode"`
	TotalPrice   float64 `json:"totalPrice"`
	MerchantID   string  `json:"mid"`
	Title        string  `json:"title"`
}

// IntermediatePaymentData is what the payment sheet reports while the shopper
// is still choosing address and courier.
type IntermediatePaymentData struct {
	CallbackTrigger    string              `json:"callbackTrigger"`
	ShippingAddress    *GoogleAddress      `json:"shippingAddress"`
	ShippingOptionData *ShippingOptionData `json:"shippingOptionData"`
}

type GoogleAddress struct {
	CountryCode string `json:"countryCode" validate:"required"`
}

type ShippingOptionData struct {
	ID string `json:"id" validate:"required"`
}

type PaymentDataUpdate struct {
	Data  *UpdateData  `json:"data"`
	Error *UpdateError `json:"error"`
}

type UpdateData struct {
	NewTransactionInfo          *NewTransactionInfo       `json:"newTransactionInfo,omitempty"`
	NewShippingOptionParameters *ShippingOptionParameters `json:"newShippingOptionParameters,omitempty"`
}

// The sheet wants the recalculated total as a string.
type NewTransactionInfo struct {
	TotalPrice string `json:"totalPrice"`
}

type UpdateError struct {
	Reason  string `json:"reason"`
	Intent  string `json:"intent"`
	Message string `json:"message"`
}

type ProceedResult struct {
	URL    string        `json:"url"`
	Status ProceedStatus `json:"status"`
}

type ProceedStatus struct {
	TransactionState string `json:"transactionState"`
}

// InitDataCacheEntry is cached per region/language/currency so repeated
// sheet openings skip the init-data round trips.
type InitDataCacheEntry struct {
	InitData  shopapi.PaymentInitData
	Countries shopapi.CountryCatalog
}
