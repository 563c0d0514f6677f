package checkoutpaypal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/expresscheckout/lib/mycontext"
	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/myhttp"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/services/expresscheckout"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(pipeline expresscheckout.Pipeline, gateway shopgateway.Gateway) *webService {
	logger := mylog.New("checkoutpaypal")

	return &webService{
		logger:  logger,
		service: newCommandService(pipeline, gateway, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	// The PayPal SDK delegates call back into these endpoints
	router.HandleFunc("/paypal/checkout", s.createOrderPage()).Methods("POST")
	router.HandleFunc("/paypal/checkout/{attemptUID}/shipping", s.shippingChangedPage()).Methods("POST")
	router.HandleFunc("/paypal/checkout/{attemptUID}/approve", s.approvePage()).Methods("PUT")
	router.HandleFunc("/paypal/checkout/{attemptUID}/cancel", s.cancelPage()).Methods("PUT")

	return nil
}

func (s *webService) createOrderPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req, err := shopapi.NewCheckoutRequestFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		resp, err := s.service.createOrder(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) shippingChangedPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		attemptUID := mux.Vars(r)["attemptUID"]

		event := ShippingChangeEvent{}
		err := json.NewDecoder(r.Body).Decode(&event)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing shipping-change event: %s", err)))
			return
		}

		resp, err := s.service.shippingChanged(c, attemptUID, event)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) approvePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		attemptUID := mux.Vars(r)["attemptUID"]

		event := ApproveEvent{}
		err := json.NewDecoder(r.Body).Decode(&event)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing approve event: %s", err)))
			return
		}

		resp, err := s.service.approve(c, attemptUID, event)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) cancelPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		attemptUID := mux.Vars(r)["attemptUID"]

		err := s.service.cancel(c, attemptUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Checkout attempt cancelled"})
	}
}
