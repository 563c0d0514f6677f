package finalization

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	formcodec "github.com/go-playground/form/v4"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/expresscheckout/lib/myuuid"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
)

var testConfig = Config{
	PaymentErrorURL:   "https://shop.example/payment/error",
	PaymentPendingURL: "https://shop.example/payment/pending",
}

func TestSettle(t *testing.T) {
	c := context.TODO()
	successURL := "https://shop.example/thanks"

	t.Run("paypal settles backend-side only", func(t *testing.T) {
		d, _, _, ctrl := setup(t)
		defer ctrl.Finish()

		redirectURL, err := d.Settle(c, session(shopapi.ProviderPayPal), "token", successURL)

		assert.NoError(t, err)
		assert.Equal(t, successURL, redirectURL)
	})

	t.Run("apple pay redirects to success after submit", func(t *testing.T) {
		d, client, _, ctrl := setup(t)
		defer ctrl.Finish()

		client.EXPECT().Submit(c, "corr-1", gomock.Any()).Return(FinalizeResponse{FinalizePaymentToken: "fin-1"}, nil)

		redirectURL, err := d.Settle(c, session(shopapi.ProviderApplePay), "token", successURL)

		assert.NoError(t, err)
		assert.Equal(t, successURL, redirectURL)
	})

	t.Run("submit failure carries error redirect", func(t *testing.T) {
		d, client, _, ctrl := setup(t)
		defer ctrl.Finish()

		client.EXPECT().Submit(c, "corr-1", gomock.Any()).Return(FinalizeResponse{}, fmt.Errorf("endpoint down"))

		_, err := d.Settle(c, session(shopapi.ProviderApplePay), "token", successURL)

		settlementErr := &SettlementError{}
		assert.True(t, errors.As(err, &settlementErr))
		assert.Equal(t, testConfig.PaymentErrorURL, settlementErr.RedirectURL)
	})

	t.Run("google pay 3ds required", func(t *testing.T) {
		d, client, frames, ctrl := setup(t)
		defer ctrl.Finish()

		client.EXPECT().Submit(c, "corr-1", gomock.Any()).Return(FinalizeResponse{FinalizePaymentToken: "fin-1"}, nil)
		frames.EXPECT().AcceptPayment(c, "attempt-123", AcceptPaymentRequest{
			FinalizePaymentToken: "fin-1",
			PaymentToken:         "token",
			CorrelationID:        "corr-1",
		}).Return(AcceptPaymentResult{
			Status:      "3ds_required",
			ThreeDSData: `{"3dsUrl":"https://acs.example/challenge","3dsDetails":{"PaReq":"abc"}}`,
		}, nil)

		redirectURL, err := d.Settle(c, session(shopapi.ProviderGooglePay), "token", successURL)

		assert.NoError(t, err)
		assert.Equal(t, "https://acs.example/challenge?PaReq=abc", redirectURL)
	})

	t.Run("google pay rejected", func(t *testing.T) {
		d, client, frames, ctrl := setup(t)
		defer ctrl.Finish()

		client.EXPECT().Submit(c, "corr-1", gomock.Any()).Return(FinalizeResponse{FinalizePaymentToken: "fin-1"}, nil)
		frames.EXPECT().AcceptPayment(c, "attempt-123", gomock.Any()).Return(AcceptPaymentResult{Status: "rejected"}, nil)

		_, err := d.Settle(c, session(shopapi.ProviderGooglePay), "token", successURL)

		settlementErr := &SettlementError{}
		assert.True(t, errors.As(err, &settlementErr))
		assert.Equal(t, testConfig.PaymentErrorURL, settlementErr.RedirectURL)
	})

	t.Run("google pay pending and unknown statuses", func(t *testing.T) {
		for _, status := range []string{"pending", "other"} {
			d, client, frames, ctrl := setup(t)

			client.EXPECT().Submit(c, "corr-1", gomock.Any()).Return(FinalizeResponse{FinalizePaymentToken: "fin-1"}, nil)
			frames.EXPECT().AcceptPayment(c, "attempt-123", gomock.Any()).Return(AcceptPaymentResult{Status: status}, nil)

			redirectURL, err := d.Settle(c, session(shopapi.ProviderGooglePay), "token", successURL)

			assert.NoError(t, err)
			assert.Equal(t, testConfig.PaymentPendingURL, redirectURL)
			ctrl.Finish()
		}
	})
}

func TestSettlementClient(t *testing.T) {
	c := context.TODO()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "corr-1", r.Header.Get("X-Correlation-ID"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "googlePay", r.Form.Get("system"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"finalizePaymentToken":"fin-1"}`))
	}))
	defer server.Close()

	form := settlementForm{System: "googlePay", AttemptUID: "attempt-123", Token: "token"}
	payload, err := formcodec.NewEncoder().Encode(form)
	assert.NoError(t, err)

	resp, err := NewSettlementClient(server.URL).Submit(c, "corr-1", payload)
	assert.NoError(t, err)
	assert.Equal(t, "fin-1", resp.FinalizePaymentToken)
}

func setup(t *testing.T) (Dispatcher, *MockSettlementClient, *MockFrameGateway, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	client := NewMockSettlementClient(ctrl)
	frames := NewMockFrameGateway(ctrl)

	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("corr-1").AnyTimes()

	return NewDispatcher(testConfig, client, frames, uuider), client, frames, ctrl
}

func session(provider shopapi.Provider) shopapi.CheckoutSession {
	return shopapi.CheckoutSession{
		AttemptUID: "attempt-123",
		Provider:   provider,
		OrderID:    "order-1",
	}
}
