package checkoutgooglepay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/expresscheckout/lib/mycache"
	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/services/courierselect"
	"github.com/MarcGrol/expresscheckout/services/expresscheckout"
	"github.com/MarcGrol/expresscheckout/services/finalization"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

const initDataTTL = time.Hour

type service struct {
	pipeline expresscheckout.Pipeline
	gateway  shopgateway.Gateway
	cache    mycache.Cache[InitDataCacheEntry]
	frames   *FrameGateway
	validate *validator.Validate
	logger   mylog.Logger
}

func newCommandService(pipeline expresscheckout.Pipeline, gateway shopgateway.Gateway,
	cache mycache.Cache[InitDataCacheEntry], frames *FrameGateway, logger mylog.Logger) *service {
	return &service{
		pipeline: pipeline,
		gateway:  gateway,
		cache:    cache,
		frames:   frames,
		validate: validator.New(),
		logger:   logger,
	}
}

// init serves the payment sheet its transaction details, allowed countries
// and default couriers, starting a fresh attempt.
func (s *service) init(c context.Context, cacheKey string, event InitEvent) (InitResult, error) {
	err := s.validate.Struct(event)
	if err != nil {
		return InitResult{}, myerrors.NewInvalidInputError(err)
	}

	mode, err := shopapi.ParseMode(event.Mode)
	if err != nil {
		return InitResult{}, myerrors.NewInvalidInputError(err)
	}

	entry, err := s.initData(c, cacheKey)
	if err != nil {
		return InitResult{}, err
	}

	session, err := s.pipeline.StartAttemptWithInitData(c, shopapi.ProviderGooglePay, mode,
		event.ProductID, event.Quantity, entry.InitData, entry.Countries)
	if err != nil {
		return InitResult{}, err
	}

	options, err := shippingOptionParameters(session.Deliveries, entry.InitData)
	if err != nil {
		return InitResult{}, err
	}

	return InitResult{
		AttemptUID:                session.AttemptUID,
		DefaultShippingOptions:    options,
		ShippingAddressParameters: addressParameters(entry.Countries),
		TransactionDetails: TransactionDetails{
			CurrencyCode: entry.InitData.CurrencyFromSession,
			TotalPrice:   0,
			MerchantID:   entry.InitData.MerchantID,
			Title:        entry.InitData.Label,
		},
	}, nil
}

func (s *service) shippingAddressParameters(c context.Context, cacheKey string) (AddressParameters, error) {
	entry, err := s.initData(c, cacheKey)
	if err != nil {
		return AddressParameters{}, err
	}

	return addressParameters(entry.Countries), nil
}

// onPaymentDataChanged resolves an intermediate sheet update. A missing
// address or the SHIPPING_OPTION trigger means only the courier changed.
// Failures travel inside the update, the sheet renders them itself.
func (s *service) onPaymentDataChanged(c context.Context, attemptUID string, cacheKey string, data IntermediatePaymentData) (PaymentDataUpdate, error) {
	if data.ShippingAddress == nil || data.CallbackTrigger == "SHIPPING_OPTION" {
		return s.courierChanged(c, attemptUID, data), nil
	}

	return s.addressChanged(c, attemptUID, cacheKey, *data.ShippingAddress), nil
}

func (s *service) courierChanged(c context.Context, attemptUID string, data IntermediatePaymentData) PaymentDataUpdate {
	if data.ShippingOptionData == nil {
		return updateError("SHIPPING_OPTION_INVALID", "SHIPPING_OPTION", "no shipping option selected")
	}

	courierID, err := strconv.Atoi(data.ShippingOptionData.ID)
	if err != nil {
		return updateError("SHIPPING_OPTION_INVALID", "SHIPPING_OPTION",
			fmt.Sprintf("malformed shipping option id %q", data.ShippingOptionData.ID))
	}

	total, err := s.pipeline.CourierChanged(c, attemptUID, courierID)
	if err != nil {
		if errors.Is(err, courierselect.ErrSelectedDeliveryInvalid) {
			return updateError("SHIPPING_OPTION_INVALID", "SHIPPING_OPTION", err.Error())
		}
		return updateError("OTHER_ERROR", "SHIPPING_OPTION", err.Error())
	}

	return PaymentDataUpdate{
		Data: &UpdateData{
			NewTransactionInfo: &NewTransactionInfo{TotalPrice: formatTotal(total)},
		},
	}
}

func (s *service) addressChanged(c context.Context, attemptUID string, cacheKey string, address GoogleAddress) PaymentDataUpdate {
	resolution, err := s.pipeline.AddressChanged(c, attemptUID, address.CountryCode, 0)
	if err != nil {
		return updateError("OTHER_ERROR", "SHIPPING_ADDRESS", err.Error())
	}
	if resolution.Rejected {
		return updateError("OTHER_ERROR", "SHIPPING_ADDRESS", "This country is not supported")
	}

	entry, err := s.initData(c, cacheKey)
	if err != nil {
		return updateError("OTHER_ERROR", "SHIPPING_ADDRESS", err.Error())
	}

	options, err := shippingOptionParameters(resolution.Couriers, entry.InitData)
	if err != nil {
		return updateError("OTHER_ERROR", "SHIPPING_ADDRESS", err.Error())
	}

	return PaymentDataUpdate{
		Data: &UpdateData{
			NewTransactionInfo:          &NewTransactionInfo{TotalPrice: formatTotal(resolution.Total)},
			NewShippingOptionParameters: &options,
		},
	}
}

// proceedPayment runs the token through approval and settlement. The sheet
// only distinguishes SUCCESS from ERROR, the url tells it where to go next.
func (s *service) proceedPayment(c context.Context, attemptUID string, payload json.RawMessage) (ProceedResult, error) {
	token := base64.StdEncoding.EncodeToString(payload)

	redirectURL, err := s.pipeline.Approve(c, attemptUID, "", token)
	if err != nil {
		settlementErr := &finalization.SettlementError{}
		if errors.As(err, &settlementErr) {
			return ProceedResult{
				URL:    settlementErr.RedirectURL,
				Status: ProceedStatus{TransactionState: "ERROR"},
			}, nil
		}

		s.logger.Log(c, attemptUID, mylog.SeverityWarn, "Error proceeding payment of attempt %s: %s", attemptUID, err)
		notifyErr := s.frames.DisplayError(c, attemptUID)
		if notifyErr != nil {
			s.logger.Log(c, attemptUID, mylog.SeverityWarn, "Error notifying frame of attempt %s: %s", attemptUID, notifyErr)
		}

		return ProceedResult{Status: ProceedStatus{TransactionState: "ERROR"}}, nil
	}

	return ProceedResult{
		URL:    redirectURL,
		Status: ProceedStatus{TransactionState: "SUCCESS"},
	}, nil
}

func (s *service) cancelPayment(c context.Context, attemptUID string) error {
	err := s.pipeline.Cancel(c, attemptUID)
	if err != nil {
		return err
	}

	s.frames.Release(attemptUID)

	return nil
}

// initData serves init data and the country catalog from the cache, fetching
// and re-caching on a miss. A broken cache degrades to fetching every time.
func (s *service) initData(c context.Context, cacheKey string) (InitDataCacheEntry, error) {
	entry, found, err := s.cache.Get(c, cacheKey)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error reading init data %s from cache: %s", cacheKey, err)
	}
	if found {
		return entry, nil
	}

	created, err := s.gateway.CreatePayment(c, shopapi.ProviderGooglePay)
	if err != nil {
		return InitDataCacheEntry{}, err
	}
	if created.ErrNo != 0 {
		return InitDataCacheEntry{}, myerrors.NewInternalError(fmt.Errorf("cannot initialise payment (errno %d)", created.ErrNo))
	}

	countries, err := s.gateway.FetchCountries(c)
	if err != nil {
		return InitDataCacheEntry{}, err
	}

	entry = InitDataCacheEntry{
		InitData:  created.InitData,
		Countries: countries,
	}

	err = s.cache.Set(c, cacheKey, entry, initDataTTL)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error caching init data %s: %s", cacheKey, err)
	}

	return entry, nil
}

func shippingOptionParameters(couriers []shopapi.Courier, initData shopapi.PaymentInitData) (ShippingOptionParameters, error) {
	if len(couriers) == 0 {
		return ShippingOptionParameters{}, myerrors.NewInternalError(fmt.Errorf("no couriers available"))
	}

	options := []ShippingOption{}
	for _, courier := range couriers {
		costPart := initData.FreeShippingLabel
		if courier.CostValue != 0 {
			costPart = fmt.Sprintf("%.2f %s", courier.CostValue, initData.CurrencySign)
		}
		options = append(options, ShippingOption{
			ID:          strconv.Itoa(courier.ID),
			Label:       fmt.Sprintf("%s: %s", costPart, courier.Name),
			Description: courier.Name,
		})
	}

	return ShippingOptionParameters{
		DefaultSelectedOptionID: options[0].ID,
		ShippingOptions:         options,
	}, nil
}

func addressParameters(catalog shopapi.CountryCatalog) AddressParameters {
	codes := []string{}
	for _, region := range catalog.Available {
		codes = append(codes, strings.ToUpper(region.ISOCode))
	}
	if catalog.Current.ISOCode != "" {
		codes = append(codes, strings.ToUpper(catalog.Current.ISOCode))
	}

	return AddressParameters{
		AllowedCountryCodes: codes,
		PhoneNumberRequired: true,
	}
}

func formatTotal(total float64) string {
	return strconv.FormatFloat(total, 'f', -1, 64)
}

func updateError(reason string, intent string, message string) PaymentDataUpdate {
	return PaymentDataUpdate{
		Error: &UpdateError{
			Reason:  reason,
			Intent:  intent,
			Message: message,
		},
	}
}
