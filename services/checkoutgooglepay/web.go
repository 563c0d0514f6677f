package checkoutgooglepay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/expresscheckout/lib/framechannel"
	"github.com/MarcGrol/expresscheckout/lib/mycache"
	"github.com/MarcGrol/expresscheckout/lib/mycontext"
	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/myhttp"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/services/expresscheckout"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

const longPollTimeout = 25 * time.Second

type webService struct {
	logger  mylog.Logger
	service *service
	frames  *FrameGateway
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(pipeline expresscheckout.Pipeline, gateway shopgateway.Gateway,
	cache mycache.Cache[InitDataCacheEntry], frames *FrameGateway) *webService {
	logger := mylog.New("checkoutgooglepay")

	return &webService{
		logger:  logger,
		service: newCommandService(pipeline, gateway, cache, frames, logger),
		frames:  frames,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	// The hosted frame speaks the message-channel protocol over these endpoints
	router.HandleFunc("/googlepay/checkout", s.initPage()).Methods("POST")
	router.HandleFunc("/googlepay/checkout/{attemptUID}", s.framePage()).Methods("POST")

	// Outbound requests towards the frame: long poll plus the reply port
	router.HandleFunc("/googlepay/checkout/{attemptUID}/requests", s.nextRequestPage()).Methods("GET")
	router.HandleFunc("/googlepay/checkout/{attemptUID}/replies", s.replyPage()).Methods("POST")

	return nil
}

func (s *webService) initPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		envelope, err := parseEnvelope(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}
		if envelope.Method != framechannel.MethodInit {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("method %s needs an attempt", envelope.Method)))
			return
		}

		event := InitEvent{}
		err = json.Unmarshal(envelope.Arguments, &event)
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(fmt.Errorf("error parsing init arguments: %s", err)))
			return
		}

		result, err := s.service.init(c, cacheKeyFromRequest(r), event)

		errorWriter.Write(c, w, http.StatusOK, replyEnvelope(c, s.logger, envelope.UID, result, err))
	}
}

func (s *webService) framePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		attemptUID := mux.Vars(r)["attemptUID"]

		envelope, err := parseEnvelope(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		var result interface{}
		switch envelope.Method {
		case framechannel.MethodGetGoogleShippingAddressParameters:
			result, err = s.service.shippingAddressParameters(c, cacheKeyFromRequest(r))

		case framechannel.MethodOnPaymentDataChanged:
			data := IntermediatePaymentData{}
			err = json.Unmarshal(envelope.Arguments, &data)
			if err != nil {
				err = myerrors.NewInvalidInputError(fmt.Errorf("error parsing payment data: %s", err))
				break
			}
			result, err = s.service.onPaymentDataChanged(c, attemptUID, cacheKeyFromRequest(r), data)

		case framechannel.MethodProceedPayment:
			result, err = s.service.proceedPayment(c, attemptUID, envelope.Arguments)

		case framechannel.MethodCancelPayment:
			err = s.service.cancelPayment(c, attemptUID)

		default:
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("unsupported frame method %q", envelope.Method)))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, replyEnvelope(c, s.logger, envelope.UID, result, err))
	}
}

func (s *webService) nextRequestPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		attemptUID := mux.Vars(r)["attemptUID"]

		pollCtx, cancel := context.WithTimeout(c, longPollTimeout)
		defer cancel()

		req, found := s.frames.NextRequest(pollCtx, attemptUID)
		if !found {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, req)
	}
}

func (s *webService) replyPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		attemptUID := mux.Vars(r)["attemptUID"]

		reply := framechannel.Reply{}
		err := json.NewDecoder(r.Body).Decode(&reply)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing frame reply: %s", err)))
			return
		}

		err = s.frames.HandleReply(attemptUID, reply)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Reply delivered"})
	}
}

func parseEnvelope(r *http.Request) (framechannel.Request, error) {
	envelope := framechannel.Request{}
	err := json.NewDecoder(r.Body).Decode(&envelope)
	if err != nil {
		return envelope, myerrors.NewInvalidInputError(fmt.Errorf("error parsing frame request: %s", err))
	}

	_, err = framechannel.ParseMethod(string(envelope.Method))
	if err != nil {
		return envelope, myerrors.NewInvalidInputError(err)
	}

	return envelope, nil
}

// replyEnvelope folds a handler outcome into the protocol's reply shape,
// errors included: the frame renders those itself.
func replyEnvelope(c context.Context, logger mylog.Logger, uid string, result interface{}, err error) framechannel.Reply {
	if err != nil {
		logger.Log(c, uid, mylog.SeverityWarn, "Frame request %s failed: %s", uid, err)
		return framechannel.Reply{UID: uid, Error: err.Error()}
	}

	rawResult, err := json.Marshal(result)
	if err != nil {
		logger.Log(c, uid, mylog.SeverityWarn, "Error marshalling reply of frame request %s: %s", uid, err)
		return framechannel.Reply{UID: uid, Error: "error marshalling result"}
	}

	return framechannel.Reply{UID: uid, Result: rawResult}
}

// cacheKeyFromRequest derives the init-data cache key from the shop's
// region, language and currency cookies.
func cacheKeyFromRequest(r *http.Request) string {
	return fmt.Sprintf("googleExpressCheckoutInitData_%s_%s_%s",
		cookieValue(r, "REGID"), cookieValue(r, "LANGID"), cookieValue(r, "CURRID"))
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "0"
	}
	return cookie.Value
}
