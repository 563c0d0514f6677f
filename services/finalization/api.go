package finalization

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MarcGrol/expresscheckout/services/shopapi"
)

// Dispatcher routes a completed payment token to provider-specific
// settlement and returns the URL the shopper ends up on.
//
//go:generate mockgen -source=api.go -package finalization -destination finalization_mock.go Dispatcher,SettlementClient,FrameGateway
type Dispatcher interface {
	Settle(c context.Context, session shopapi.CheckoutSession, token string, successURL string) (string, error)
}

// SettlementClient submits a payment for settlement on the order-payment
// endpoint.
type SettlementClient interface {
	Submit(c context.Context, correlationID string, payload url.Values) (FinalizeResponse, error)
}

type FinalizeResponse struct {
	FinalizePaymentToken string `json:"finalizePaymentToken"`
}

// FrameGateway performs the second round trip through the Google Pay hosted
// frame that turns a finalize-token into a terminal payment status.
type FrameGateway interface {
	AcceptPayment(c context.Context, attemptUID string, req AcceptPaymentRequest) (AcceptPaymentResult, error)
}

type AcceptPaymentRequest struct {
	FinalizePaymentToken string `json:"finalizePaymentToken"`
	PaymentToken         string `json:"paymentToken"`
	CorrelationID        string `json:"xCorrelationId"`
}

type AcceptPaymentResult struct {
	Status      string `json:"status"`
	ThreeDSData string `json:"_3dsData"`
}

const (
	statusThreeDSRequired = "3ds_required"
	statusRejected        = "rejected"
	statusPending         = "pending"
)

// SettlementError is terminal for the attempt and carries the URL the
// shopper must be sent to.
type SettlementError struct {
	RedirectURL string
	Cause       error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement failed: %s", e.Cause)
}

func (e *SettlementError) Unwrap() error {
	return e.Cause
}
