package checkoutpaypal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/services/expresscheckout"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

// Patch paths address the single purchase unit of the express-checkout order.
const (
	amountPatchPath          = "/purchase_units/@reference_id=='default'/amount"
	shippingOptionsPatchPath = "/purchase_units/@reference_id=='default'/shipping/options"
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

// createOrder starts an attempt and creates the order on the PayPal side. The
// order id is what the SDK hands back on approval.
func (s *service) createOrder(c context.Context, req shopapi.CheckoutRequest) (CreateOrderResponse, error) {
	mode, err := shopapi.ParseMode(req.Mode)
	if err != nil {
		return CreateOrderResponse{}, myerrors.NewInvalidInputError(err)
	}

	session, err := s.pipeline.StartAttempt(c, shopapi.ProviderPayPal, mode, req.ProductID, req.Quantity)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	created, err := s.gateway.CreatePayment(c, shopapi.ProviderPayPal)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	s.logger.Log(c, session.AttemptUID, mylog.SeverityInfo, "Created paypal order %s for attempt %s", created.OrderID, session.AttemptUID)

	return CreateOrderResponse{
		AttemptUID: session.AttemptUID,
		OrderID:    created.OrderID,
	}, nil
}

func (s *service) shippingChanged(c context.Context, attemptUID string, event ShippingChangeEvent) (ShippingChangeResponse, error) {
	err := s.validate.Struct(event)
	if err != nil {
		return ShippingChangeResponse{}, myerrors.NewInvalidInputError(err)
	}

	// The session-level courier choice is cleared first: the pipeline persists
	// a fresh one against the new region.
	status, err := s.gateway.DeleteSelectedCourier(c)
	if err != nil {
		return ShippingChangeResponse{}, err
	}
	if status != "success" {
		s.logger.Log(c, attemptUID, mylog.SeverityWarn, "Could not clear selected courier of attempt %s: %s", attemptUID, status)
	}

	selectedCourierID := 0
	if event.SelectedShippingOption.ID != "" {
		selectedCourierID, err = strconv.Atoi(event.SelectedShippingOption.ID)
		if err != nil {
			return ShippingChangeResponse{}, myerrors.NewInvalidInputError(fmt.Errorf("malformed shipping option id %q: %s", event.SelectedShippingOption.ID, err))
		}
	}

	resolution, err := s.pipeline.AddressChanged(c, attemptUID, event.ShippingAddress.CountryCode, selectedCourierID)
	if err != nil {
		return ShippingChangeResponse{}, err
	}
	if resolution.Rejected {
		return ShippingChangeResponse{Reject: true}, nil
	}

	update, err := s.gateway.UpdateOrderParams(c, shopapi.ProviderPayPal, "", resolution.RegionID, resolution.Couriers)
	if err != nil {
		return ShippingChangeResponse{}, err
	}

	return ShippingChangeResponse{
		PatchOperations: []PatchOperation{
			{Op: "replace", Path: amountPatchPath, Value: update.Amount},
			{Op: "replace", Path: shippingOptionsPatchPath, Value: update.Shipping.Options},
		},
	}, nil
}

func (s *service) approve(c context.Context, attemptUID string, event ApproveEvent) (ApproveResponse, error) {
	err := s.validate.Struct(event)
	if err != nil {
		return ApproveResponse{}, myerrors.NewInvalidInputError(err)
	}

	redirectURL, err := s.pipeline.Approve(c, attemptUID, event.OrderID, event.FacilitatorAccessToken)
	if err != nil {
		return ApproveResponse{}, err
	}

	return ApproveResponse{RedirectURL: redirectURL}, nil
}

func (s *service) cancel(c context.Context, attemptUID string) error {
	return s.pipeline.Cancel(c, attemptUID)
}
