package checkoutstatus

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/expresscheckout/lib/myevents"
	"github.com/MarcGrol/expresscheckout/lib/mypubsub"
	"github.com/MarcGrol/expresscheckout/lib/mystore"
	"github.com/MarcGrol/expresscheckout/lib/mytime"
	"github.com/MarcGrol/expresscheckout/services/checkoutevents"
)

func TestCheckoutStatus(t *testing.T) {

	t.Run("Checkout started", func(t *testing.T) {
		router, ctrl := setup(t)
		defer ctrl.Finish()

		// when
		postEvent(t, router, checkoutevents.CheckoutStarted{
			AttemptUID:   "attempt-1",
			ProviderName: "googlePay",
			Mode:         "product",
		})

		// then
		response := getStatus(router, "attempt-1")
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"Status": "started"`)
		assert.Contains(t, response.Body.String(), `"ProviderName": "googlePay"`)
		assert.Contains(t, response.Body.String(), `"Mode": "product"`)
	})

	t.Run("Checkout completed", func(t *testing.T) {
		router, ctrl := setup(t)
		defer ctrl.Finish()

		postEvent(t, router, checkoutevents.CheckoutStarted{
			AttemptUID:   "attempt-1",
			ProviderName: "payPal",
			Mode:         "basket",
		})

		// when
		postEvent(t, router, checkoutevents.CheckoutCompleted{
			AttemptUID:   "attempt-1",
			ProviderName: "payPal",
			TotalAmount:  109.98,
			Currency:     "EUR",
		})

		// then
		response := getStatus(router, "attempt-1")
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"Status": "completed"`)
		assert.Contains(t, response.Body.String(), `"Mode": "basket"`)
		assert.Contains(t, response.Body.String(), `"TotalAmount": 109.98`)
		assert.Contains(t, response.Body.String(), `"Currency": "EUR"`)
	})

	t.Run("Completion arrives before start", func(t *testing.T) {
		router, ctrl := setup(t)
		defer ctrl.Finish()

		// when
		postEvent(t, router, checkoutevents.CheckoutCompleted{
			AttemptUID:   "attempt-2",
			ProviderName: "applePay",
			TotalAmount:  50,
			Currency:     "EUR",
		})

		// then
		response := getStatus(router, "attempt-2")
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"Status": "completed"`)
		assert.Contains(t, response.Body.String(), `"ProviderName": "applePay"`)
	})

	t.Run("Checkout cancelled", func(t *testing.T) {
		router, ctrl := setup(t)
		defer ctrl.Finish()

		postEvent(t, router, checkoutevents.CheckoutStarted{
			AttemptUID:   "attempt-1",
			ProviderName: "applePay",
			Mode:         "product",
		})

		// when
		postEvent(t, router, checkoutevents.CheckoutCancelled{
			AttemptUID:   "attempt-1",
			ProviderName: "applePay",
		})

		// then
		response := getStatus(router, "attempt-1")
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"Status": "cancelled"`)
	})

	t.Run("Unknown attempt", func(t *testing.T) {
		router, ctrl := setup(t)
		defer ctrl.Finish()

		// when
		response := getStatus(router, "does-not-exist")

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Unknown event type", func(t *testing.T) {
		router, ctrl := setup(t)
		defer ctrl.Finish()

		// when
		envelope := myevents.EventEnvelope{
			Topic:         checkoutevents.TopicName,
			EventTypeName: checkoutevents.TopicName + ".checkout.exploded",
			EventPayload:  `{}`,
		}
		body, err := json.Marshal(envelope)
		assert.NoError(t, err)
		request := httptest.NewRequest(http.MethodPost, "/api/checkoutstatus/event", bytes.NewReader(body))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusInternalServerError, response.Code)
	})

	t.Run("List statuses", func(t *testing.T) {
		router, ctrl := setup(t)
		defer ctrl.Finish()

		postEvent(t, router, checkoutevents.CheckoutStarted{
			AttemptUID:   "attempt-1",
			ProviderName: "googlePay",
			Mode:         "product",
		})
		postEvent(t, router, checkoutevents.CheckoutStarted{
			AttemptUID:   "attempt-2",
			ProviderName: "payPal",
			Mode:         "basket",
		})

		// when
		request := httptest.NewRequest(http.MethodGet, "/checkout/status", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "attempt-1")
		assert.Contains(t, response.Body.String(), "attempt-2")
	})
}

func setup(t *testing.T) (*mux.Router, *gomock.Controller) {
	c := context.TODO()
	ctrl := gomock.NewController(t)

	store, _, err := mystore.NewInMemoryStore[CheckoutStatus](c)
	assert.NoError(t, err)

	subscriber := mypubsub.NewMockPubSub(ctrl)
	subscriber.EXPECT().CreateTopic(gomock.Any(), checkoutevents.TopicName).Return(nil)
	subscriber.EXPECT().Subscribe(gomock.Any(), checkoutevents.TopicName,
		"http://localhost:8080/api/checkoutstatus/event").Return(nil)

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	router := mux.NewRouter()
	err = NewWebService(store, subscriber, nower).RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return router, ctrl
}

func postEvent(t *testing.T, router *mux.Router, event myevents.Event) {
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	envelope := myevents.EventEnvelope{
		Topic:         checkoutevents.TopicName,
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	}
	body, err := json.Marshal(envelope)
	assert.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/api/checkoutstatus/event", bytes.NewReader(body))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	assert.Equal(t, http.StatusOK, response.Code)
}

func getStatus(router *mux.Router, attemptUID string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/checkout/status/"+attemptUID, nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}
