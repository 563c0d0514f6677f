package checkoutapplepay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/expresscheckout/services/courierselect"
	"github.com/MarcGrol/expresscheckout/services/expresscheckout"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

var testCouriers = []shopapi.Courier{
	{ID: 1, Name: "pickup", CostValue: 0, CostCurrency: "PLN"},
	{ID: 2, Name: "dpd", CostValue: 9.99, CostCurrency: "PLN"},
}

func TestStart(t *testing.T) {
	t.Run("merchant validated", func(t *testing.T) {
		router, pipeline, gateway, ctrl := setup(t)
		defer ctrl.Finish()

		pipeline.EXPECT().StartAttempt(gomock.Any(), shopapi.ProviderApplePay, shopapi.ModeBasket, "", 0).
			Return(shopapi.CheckoutSession{
				AttemptUID: "attempt-123",
				InitData:   shopapi.PaymentInitData{CurrencyFromSession: "PLN", Label: "My webshop"},
				Deliveries: testCouriers,
			}, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), shopapi.ProviderApplePay).
			Return(shopgateway.PaymentCreated{ErrNo: 0, MerchantSession: json.RawMessage(`{"sessionId":"ms-1"}`)}, nil)

		request := httptest.NewRequest(http.MethodPost, "/applepay/checkout",
			strings.NewReader("provider=applePay&mode=basket"))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "ms-1")
		assert.Contains(t, response.Body.String(), `"identifier": "1"`)
		assert.Contains(t, response.Body.String(), "My webshop")
	})

	t.Run("merchant validation failure", func(t *testing.T) {
		router, pipeline, gateway, ctrl := setup(t)
		defer ctrl.Finish()

		pipeline.EXPECT().StartAttempt(gomock.Any(), shopapi.ProviderApplePay, shopapi.ModeBasket, "", 0).
			Return(shopapi.CheckoutSession{AttemptUID: "attempt-123"}, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), shopapi.ProviderApplePay).
			Return(shopgateway.PaymentCreated{ErrNo: 6}, nil)

		request := httptest.NewRequest(http.MethodPost, "/applepay/checkout",
			strings.NewReader("provider=applePay&mode=basket"))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusInternalServerError, response.Code)
	})
}

func TestContactChanged(t *testing.T) {
	t.Run("supported country returns new total and methods", func(t *testing.T) {
		router, pipeline, _, ctrl := setup(t)
		defer ctrl.Finish()

		pipeline.EXPECT().AddressChanged(gomock.Any(), "attempt-123", "PL", 0).
			Return(expresscheckout.Resolution{RegionID: 3, Total: 109.98, Couriers: testCouriers}, nil)

		response := doJSON(router, http.MethodPost, "/applepay/checkout/attempt-123/contact",
			`{"shippingContact":{"countryCode":"PL"}}`)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "109.98")
		assert.Contains(t, response.Body.String(), "newShippingMethods")
		assert.NotContains(t, response.Body.String(), "shippingContactInvalid")
	})

	t.Run("unsupported country keeps last total and reports error", func(t *testing.T) {
		router, pipeline, _, ctrl := setup(t)
		defer ctrl.Finish()

		pipeline.EXPECT().AddressChanged(gomock.Any(), "attempt-123", "FR", 0).
			Return(expresscheckout.Resolution{Rejected: true, Total: 99.99}, nil)

		response := doJSON(router, http.MethodPost, "/applepay/checkout/attempt-123/contact",
			`{"shippingContact":{"countryCode":"FR"}}`)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "99.99")
		assert.Contains(t, response.Body.String(), "shippingContactInvalid")
		assert.Contains(t, response.Body.String(), "countryCode")
		assert.NotContains(t, response.Body.String(), "newShippingMethods")
	})

	t.Run("missing country code fails validation", func(t *testing.T) {
		router, _, _, ctrl := setup(t)
		defer ctrl.Finish()

		response := doJSON(router, http.MethodPost, "/applepay/checkout/attempt-123/contact",
			`{"shippingContact":{}}`)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func TestDeliveryChanged(t *testing.T) {
	t.Run("known courier returns new total", func(t *testing.T) {
		router, pipeline, _, ctrl := setup(t)
		defer ctrl.Finish()

		pipeline.EXPECT().CourierChanged(gomock.Any(), "attempt-123", 2).Return(109.98, nil)

		response := doJSON(router, http.MethodPost, "/applepay/checkout/attempt-123/shipping",
			`{"shippingMethod":{"identifier":"2"}}`)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "109.98")
	})

	t.Run("courier outside catalog", func(t *testing.T) {
		router, pipeline, _, ctrl := setup(t)
		defer ctrl.Finish()

		pipeline.EXPECT().CourierChanged(gomock.Any(), "attempt-123", 42).
			Return(0.0, courierselect.ErrSelectedDeliveryInvalid)

		response := doJSON(router, http.MethodPost, "/applepay/checkout/attempt-123/shipping",
			`{"shippingMethod":{"identifier":"42"}}`)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func TestApprove(t *testing.T) {
	router, pipeline, _, ctrl := setup(t)
	defer ctrl.Finish()

	encodedToken := base64.StdEncoding.EncodeToString(
		[]byte(`{"token":{"transactionIdentifier":"txn-1","paymentData":{"data":"abc"}}}`))
	pipeline.EXPECT().Approve(gomock.Any(), "attempt-123", "txn-1", encodedToken).
		Return("https://shop.example/thanks", nil)

	response := doJSON(router, http.MethodPut, "/applepay/checkout/attempt-123/approve",
		`{"token":{"transactionIdentifier":"txn-1","paymentData":{"data":"abc"}}}`)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "https://shop.example/thanks")
}

func TestCancel(t *testing.T) {
	router, pipeline, _, ctrl := setup(t)
	defer ctrl.Finish()

	pipeline.EXPECT().Cancel(gomock.Any(), "attempt-123").Return(nil)

	response := doJSON(router, http.MethodPut, "/applepay/checkout/attempt-123/cancel", "")

	assert.Equal(t, http.StatusOK, response.Code)
}

func doJSON(router *mux.Router, method string, url string, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, url, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T) (*mux.Router, *expresscheckout.MockPipeline, *shopgateway.MockGateway, *gomock.Controller) {
	c := context.TODO()
	ctrl := gomock.NewController(t)

	pipeline := expresscheckout.NewMockPipeline(ctrl)
	gateway := shopgateway.NewMockGateway(ctrl)

	router := mux.NewRouter()
	err := NewWebService(pipeline, gateway).RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return router, pipeline, gateway, ctrl
}
