package shopapi

import (
	"fmt"
	"math"
	"time"
)

type Provider string

const (
	ProviderPayPal    Provider = "paypal"
	ProviderApplePay  Provider = "applePay"
	ProviderGooglePay Provider = "googlePay"
)

func ParseProvider(name string) (Provider, error) {
	p := Provider(name)
	switch p {
	case ProviderPayPal, ProviderApplePay, ProviderGooglePay:
		return p, nil
	}
	return "", fmt.Errorf("unknown payment provider %q", name)
}

type Mode string

const (
	ModeProduct Mode = "product"
	ModeBasket  Mode = "basket"
)

func ParseMode(name string) (Mode, error) {
	m := Mode(name)
	switch m {
	case ModeProduct, ModeBasket:
		return m, nil
	}
	return "", fmt.Errorf("unknown checkout mode %q", name)
}

// AttemptPhase tracks where a checkout attempt is in its lifecycle.
type AttemptPhase string

const (
	PhaseInitializing     AttemptPhase = "initializing"
	PhaseAwaitingAddress  AttemptPhase = "awaitingAddress"
	PhaseAddressRejected  AttemptPhase = "addressRejected"
	PhaseShippingResolved AttemptPhase = "shippingResolved"
	PhaseAwaitingApproval AttemptPhase = "awaitingApproval"
	PhaseSettling         AttemptPhase = "settling"
	PhaseRedirected       AttemptPhase = "redirected"
	PhaseCancelled        AttemptPhase = "cancelled"
)

// Round2 rounds a money amount to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

type Region struct {
	ID      int
	ISOCode string
	Name    string
}

type CountryCatalog struct {
	Current   Region
	Available []Region
}

type Courier struct {
	ID           int
	Name         string
	CostValue    float64
	CostCurrency string
	IsPrepaid    bool
}

type BasketProduct struct {
	ID         string
	Name       string
	Quantity   int
	GrossWorth float64
}

type BasketSnapshot struct {
	ProductsCount int
	GrossWorth    float64
	NetWorth      float64
	Currency      string
	Products      []BasketProduct
}

// PaymentInitData is what the shop backend hands out to initialise a
// provider's payment sheet.
type PaymentInitData struct {
	CurrencyFromSession string `json:"currencyFromSession"`
	CurrencySign        string `json:"currencySign"`
	FreeShippingLabel   string `json:"freeShippingLabel"`
	MerchantID          string `json:"mid"`
	MerchantAppleID     string `json:"merchantAppleId"`
	Label               string `json:"label"`
}

// CheckoutSession is the per-attempt state, from button click to redirect or
// cancel. Mutated only through the orchestration pipeline.
type CheckoutSession struct {
	AttemptUID             string
	Provider               Provider
	Mode                   Mode
	Phase                  AttemptPhase
	ProductID              string
	Quantity               int
	OrderID                string
	InitData               PaymentInitData
	Countries              CountryCatalog
	Deliveries             []Courier
	Basket                 BasketSnapshot
	SelectedCourierID      int
	LastComputedTotal      float64
	FirstContactChangeDone bool
	Finished               bool
	CreatedAt              time.Time
	LastModified           *time.Time
}

// DeliveryByID looks a courier up in the most recently fetched catalog.
func (s CheckoutSession) DeliveryByID(courierID int) (Courier, bool) {
	for _, courier := range s.Deliveries {
		if courier.ID == courierID {
			return courier, true
		}
	}
	return Courier{}, false
}
