package expresscheckout

import (
	"context"

	"github.com/MarcGrol/expresscheckout/services/shopapi"
)

// Pipeline is the shared orchestration surface all provider adapters funnel
// through.
//
//go:generate mockgen -source=api.go -package expresscheckout -destination pipeline_mock.go Pipeline
type Pipeline interface {
	StartAttempt(c context.Context, provider shopapi.Provider, mode shopapi.Mode, productID string, quantity int) (shopapi.CheckoutSession, error)
	StartAttemptWithInitData(c context.Context, provider shopapi.Provider, mode shopapi.Mode, productID string, quantity int, initData shopapi.PaymentInitData, catalog shopapi.CountryCatalog) (shopapi.CheckoutSession, error)
	AddressChanged(c context.Context, attemptUID string, countryCode string, selectedCourierID int) (Resolution, error)
	CourierChanged(c context.Context, attemptUID string, courierID int) (float64, error)
	Approve(c context.Context, attemptUID string, orderID string, token string) (string, error)
	Cancel(c context.Context, attemptUID string) error
}
