package checkoutapplepay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/services/courierselect"
	"github.com/MarcGrol/expresscheckout/services/expresscheckout"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

type service struct {
	pipeline expresscheckout.Pipeline
	gateway  shopgateway.Gateway
	validate *validator.Validate
	logger   mylog.Logger
}

func newCommandService(pipeline expresscheckout.Pipeline, gateway shopgateway.Gateway, logger mylog.Logger) *service {
	return &service{
		pipeline: pipeline,
		gateway:  gateway,
		validate: validator.New(),
		logger:   logger,
	}
}

// start begins an attempt and validates the merchant with Apple. The sheet
// cannot open without a merchant session.
func (s *service) start(c context.Context, req shopapi.CheckoutRequest) (StartResponse, error) {
	mode, err := shopapi.ParseMode(req.Mode)
	if err != nil {
		return StartResponse{}, myerrors.NewInvalidInputError(err)
	}

	session, err := s.pipeline.StartAttempt(c, shopapi.ProviderApplePay, mode, req.ProductID, req.Quantity)
	if err != nil {
		return StartResponse{}, err
	}

	created, err := s.gateway.CreatePayment(c, shopapi.ProviderApplePay)
	if err != nil {
		return StartResponse{}, err
	}
	if created.ErrNo != 0 {
		return StartResponse{}, myerrors.NewInternalError(fmt.Errorf("cannot verify merchant (errno %d)", created.ErrNo))
	}

	return StartResponse{
		AttemptUID:      session.AttemptUID,
		MerchantSession: created.MerchantSession,
		CurrencyCode:    session.InitData.CurrencyFromSession,
		Label:           session.InitData.Label,
		ShippingMethods: shippingMethodsFromCouriers(session.Deliveries),
	}, nil
}

func (s *service) contactChanged(c context.Context, attemptUID string, event ContactChangeEvent) (ContactChangeResponse, error) {
	err := s.validate.Struct(event)
	if err != nil {
		return ContactChangeResponse{}, myerrors.NewInvalidInputError(err)
	}

	resolution, err := s.pipeline.AddressChanged(c, attemptUID, event.ShippingContact.CountryCode, 0)
	if err != nil {
		return ContactChangeResponse{}, err
	}
	if resolution.Rejected {
		// the sheet stays open, showing the last known total
		return ContactChangeResponse{
			NewTotal: NewTotal{Amount: resolution.Total},
			Errors: []ApplePayError{
				{Code: "shippingContactInvalid", ContactField: "countryCode", Message: "This country is not supported"},
			},
		}, nil
	}

	return ContactChangeResponse{
		NewTotal:           NewTotal{Amount: resolution.Total},
		NewShippingMethods: shippingMethodsFromCouriers(resolution.Couriers),
	}, nil
}

func (s *service) deliveryChanged(c context.Context, attemptUID string, event DeliveryChangeEvent) (DeliveryChangeResponse, error) {
	err := s.validate.Struct(event)
	if err != nil {
		return DeliveryChangeResponse{}, myerrors.NewInvalidInputError(err)
	}

	courierID, err := strconv.Atoi(event.ShippingMethod.Identifier)
	if err != nil {
		return DeliveryChangeResponse{}, myerrors.NewInvalidInputError(fmt.Errorf("malformed shipping method identifier %q: %s", event.ShippingMethod.Identifier, err))
	}

	total, err := s.pipeline.CourierChanged(c, attemptUID, courierID)
	if err != nil {
		if errors.Is(err, courierselect.ErrSelectedDeliveryInvalid) {
			return DeliveryChangeResponse{}, myerrors.NewInvalidInputError(err)
		}
		return DeliveryChangeResponse{}, err
	}

	return DeliveryChangeResponse{NewTotal: NewTotal{Amount: total}}, nil
}

func (s *service) approve(c context.Context, attemptUID string, event ApproveEvent) (ApproveResponse, error) {
	err := s.validate.Struct(event)
	if err != nil {
		return ApproveResponse{}, myerrors.NewInvalidInputError(err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return ApproveResponse{}, myerrors.NewInternalError(fmt.Errorf("error encoding payment token: %s", err))
	}

	redirectURL, err := s.pipeline.Approve(c, attemptUID,
		event.Token.TransactionIdentifier, base64.StdEncoding.EncodeToString(payload))
	if err != nil {
		return ApproveResponse{}, err
	}

	return ApproveResponse{RedirectURL: redirectURL}, nil
}

func (s *service) cancel(c context.Context, attemptUID string) error {
	return s.pipeline.Cancel(c, attemptUID)
}

func shippingMethodsFromCouriers(couriers []shopapi.Courier) []ShippingMethod {
	methods := []ShippingMethod{}
	for _, courier := range couriers {
		methods = append(methods, ShippingMethod{
			Identifier: strconv.Itoa(courier.ID),
			Label:      courier.Name,
			Amount:     courier.CostValue,
			Detail:     courier.Name,
		})
	}
	return methods
}
