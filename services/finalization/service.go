package finalization

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/lib/myuuid"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
)

type Config struct {
	PaymentErrorURL   string
	PaymentPendingURL string
}

type settlementForm struct {
	System     string `form:"system"`
	AttemptUID string `form:"attemptUid"`
	OrderID    string `form:"orderId"`
	Token      string `form:"token"`
}

type threeDSRedirect struct {
	URL     string            `json:"3dsUrl"`
	Details map[string]string `json:"3dsDetails"`
}

type dispatcher struct {
	cfg    Config
	client SettlementClient
	frames FrameGateway
	uuider myuuid.UUIDer
	logger mylog.Logger
}

func NewDispatcher(cfg Config, client SettlementClient, frames FrameGateway, uuider myuuid.UUIDer) Dispatcher {
	return &dispatcher{
		cfg:    cfg,
		client: client,
		frames: frames,
		uuider: uuider,
		logger: mylog.New("finalization"),
	}
}

// Settle performs the provider-specific settlement follow-up. PayPal settles
// backend-side only, Apple Pay redirects straight to the success URL, Google
// Pay needs the extra frame round trip for its terminal status.
func (d *dispatcher) Settle(c context.Context, session shopapi.CheckoutSession, token string, successURL string) (string, error) {
	if session.Provider == shopapi.ProviderPayPal {
		return successURL, nil
	}

	correlationID := d.uuider.Create()

	payload, err := formcodec.NewEncoder().Encode(settlementForm{
		System:     string(session.Provider),
		AttemptUID: session.AttemptUID,
		OrderID:    session.OrderID,
		Token:      token,
	})
	if err != nil {
		return "", &SettlementError{
			RedirectURL: d.cfg.PaymentErrorURL,
			Cause:       fmt.Errorf("error encoding settlement form: %s", err),
		}
	}

	resp, err := d.client.Submit(c, correlationID, payload)
	if err != nil {
		return "", &SettlementError{
			RedirectURL: d.cfg.PaymentErrorURL,
			Cause:       err,
		}
	}

	d.logger.Log(c, session.AttemptUID, mylog.SeverityInfo, "Settlement of attempt %s submitted with correlation id %s", session.AttemptUID, correlationID)

	switch session.Provider {
	case shopapi.ProviderApplePay:
		return successURL, nil
	case shopapi.ProviderGooglePay:
		return d.settleGooglePay(c, session.AttemptUID, resp, token, correlationID)
	}

	return successURL, nil
}

func (d *dispatcher) settleGooglePay(c context.Context, attemptUID string, resp FinalizeResponse, token string, correlationID string) (string, error) {
	result, err := d.frames.AcceptPayment(c, attemptUID, AcceptPaymentRequest{
		FinalizePaymentToken: resp.FinalizePaymentToken,
		PaymentToken:         token,
		CorrelationID:        correlationID,
	})
	if err != nil {
		return "", &SettlementError{
			RedirectURL: d.cfg.PaymentErrorURL,
			Cause:       err,
		}
	}

	switch result.Status {
	case statusThreeDSRequired:
		redirect := threeDSRedirect{}
		err = json.Unmarshal([]byte(result.ThreeDSData), &redirect)
		if err != nil {
			return "", &SettlementError{
				RedirectURL: d.cfg.PaymentErrorURL,
				Cause:       fmt.Errorf("error parsing 3ds data: %s", err),
			}
		}
		return appendDetails(redirect), nil
	case statusRejected:
		return "", &SettlementError{
			RedirectURL: d.cfg.PaymentErrorURL,
			Cause:       fmt.Errorf("payment rejected"),
		}
	case statusPending:
		return d.cfg.PaymentPendingURL, nil
	default:
		return d.cfg.PaymentPendingURL, nil
	}
}

// appendDetails folds the 3DS details into the challenge URL so the shopper
// can be redirected in one hop.
func appendDetails(redirect threeDSRedirect) string {
	if len(redirect.Details) == 0 {
		return redirect.URL
	}

	values := url.Values{}
	for name, value := range redirect.Details {
		values.Set(name, value)
	}

	separator := "?"
	if parsed, err := url.Parse(redirect.URL); err == nil && parsed.RawQuery != "" {
		separator = "&"
	}

	return redirect.URL + separator + values.Encode()
}
