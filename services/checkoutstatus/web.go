package checkoutstatus

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/expresscheckout/lib/mycontext"
	"github.com/MarcGrol/expresscheckout/lib/myevents"
	"github.com/MarcGrol/expresscheckout/lib/myhttp"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/lib/mypubsub"
	"github.com/MarcGrol/expresscheckout/lib/mystore"
	"github.com/MarcGrol/expresscheckout/lib/mytime"
	"github.com/MarcGrol/expresscheckout/services/checkoutevents"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(store mystore.Store[CheckoutStatus], subscriber mypubsub.PubSub, nower mytime.Nower) *webService {
	logger := mylog.New("checkoutstatus")

	return &webService{
		logger:  logger,
		service: newService(store, subscriber, nower, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/checkout/status", s.listStatusesPage()).Methods("GET")
	router.HandleFunc("/checkout/status/{attemptUID}", s.statusPage()).Methods("GET")

	// Listen for checkout lifecycle events
	router.HandleFunc("/api/checkoutstatus/event", s.handleEventEnvelope()).Methods("POST")

	err := s.service.Subscribe(c)
	if err != nil {
		return err
	}

	return nil
}

func (s *webService) statusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		attemptUID := mux.Vars(r)["attemptUID"]

		status, err := s.service.getStatus(c, attemptUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, status)
	}
}

func (s *webService) listStatusesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		statuses, err := s.service.listStatuses(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, statuses)
	}
}

func (s *webService) handleEventEnvelope() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		envelope, err := myevents.ParseEventEnvelope(r.Body)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = checkoutevents.DispatchEvent(c, s.service, envelope.Topic, envelope.EventTypeName, envelope.EventPayload)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}
