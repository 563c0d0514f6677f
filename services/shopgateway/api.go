package shopgateway

import (
	"context"
	"encoding/json"

	"github.com/MarcGrol/expresscheckout/services/shopapi"
)

// Gateway exposes the shop-backend queries and mutations the checkout
// pipeline depends on. Failures surface as bad-gateway errors.
//
//go:generate mockgen -source=api.go -package shopgateway -destination gateway_mock.go Gateway
type Gateway interface {
	FetchShipping(c context.Context, mode shopapi.Mode, regionID int) ([]shopapi.Courier, error)
	FetchCountries(c context.Context) (shopapi.CountryCatalog, error)
	FetchBasket(c context.Context) (shopapi.BasketSnapshot, error)
	AddProductToBasket(c context.Context, productID string, quantity int) error
	FetchPaymentInitData(c context.Context, provider shopapi.Provider) (shopapi.PaymentInitData, error)
	CreatePayment(c context.Context, provider shopapi.Provider) (PaymentCreated, error)
	SaveSelectedCourier(c context.Context, courierID int, provider shopapi.Provider, amount float64, currency string) (string, error)
	DeleteSelectedCourier(c context.Context) (string, error)
	RestoreBasket(c context.Context) error
	UpdateOrderParams(c context.Context, provider shopapi.Provider, orderID string, regionID int, couriers []shopapi.Courier) (OrderUpdate, error)
	ProceedPayment(c context.Context, provider shopapi.Provider, orderID string, token string) (PaymentProceeded, error)
}

// PaymentCreated is the provider-side payment/order created for an attempt.
type PaymentCreated struct {
	OrderID         string                 `json:"id"`
	ErrNo           int                    `json:"errno"`
	MerchantSession json.RawMessage        `json:"merchantSession,omitempty"`
	InitData        shopapi.PaymentInitData `json:"-"`
}

type OrderAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type OrderShippingOption struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	Type     string      `json:"type"`
	Selected bool        `json:"selected"`
	Amount   OrderAmount `json:"amount"`
}

type OrderShipping struct {
	Options []OrderShippingOption `json:"options"`
}

// OrderUpdate carries the recalculated amount and shipping options for an
// externally held order (the PayPal patch payload).
type OrderUpdate struct {
	Amount   OrderAmount   `json:"amount"`
	Shipping OrderShipping `json:"shipping"`
}

type PaymentProceeded struct {
	Status      string
	RedirectURL string
}
