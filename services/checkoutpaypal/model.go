package checkoutpaypal

// Payloads mirror the PayPal JS SDK delegate callbacks.

type ShippingChangeEvent struct {
	ShippingAddress        ShippingAddress        `json:"shipping_address" validate:"required"`
	SelectedShippingOption SelectedShippingOption `json:"selected_shipping_option"`
}

type ShippingAddress struct {
	CountryCode string `json:"country_code" validate:"required"`
}

type SelectedShippingOption struct {
	ID string `json:"id"`
}

type ApproveEvent struct {
	OrderID                string `json:"orderID" validate:"required"`
	FacilitatorAccessToken string `json:"facilitatorAccessToken" validate:"required"`
}

type CreateOrderResponse struct {
	AttemptUID string `json:"attemptUid"`
	OrderID    string `json:"orderID"`
}

// PatchOperation is applied to the externally held PayPal order.
type PatchOperation struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

type ShippingChangeResponse struct {
	Reject          bool             `json:"reject"`
	PatchOperations []PatchOperation `json:"patchOperations,omitempty"`
}

type ApproveResponse struct {
	RedirectURL string `json:"redirectUrl"`
}
