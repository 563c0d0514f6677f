package checkoutstatus

import (
	"context"
	"fmt"

	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/myhttp"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/lib/mypubsub"
	"github.com/MarcGrol/expresscheckout/lib/mystore"
	"github.com/MarcGrol/expresscheckout/lib/mytime"
	"github.com/MarcGrol/expresscheckout/services/checkoutevents"
)

type service struct {
	store      mystore.Store[CheckoutStatus]
	subscriber mypubsub.PubSub
	nower      mytime.Nower
	logger     mylog.Logger
}

func newService(store mystore.Store[CheckoutStatus], subscriber mypubsub.PubSub, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		store:      store,
		subscriber: subscriber,
		nower:      nower,
		logger:     logger,
	}
}

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	err = s.subscriber.Subscribe(c, checkoutevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/checkoutstatus/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

func (s *service) OnCheckoutStarted(c context.Context, topic string, event checkoutevents.CheckoutStarted) error {
	s.logger.Log(c, event.AttemptUID, mylog.SeverityInfo, "Checkout %s started with %s", event.AttemptUID, event.ProviderName)

	return s.store.Put(c, event.AttemptUID, CheckoutStatus{
		AttemptUID:   event.AttemptUID,
		ProviderName: event.ProviderName,
		Mode:         event.Mode,
		Status:       statusStarted,
		LastModified: s.nower.Now(),
	})
}

func (s *service) OnCheckoutCompleted(c context.Context, topic string, event checkoutevents.CheckoutCompleted) error {
	s.logger.Log(c, event.AttemptUID, mylog.SeverityInfo, "Checkout %s completed", event.AttemptUID)

	return s.upsert(c, event.AttemptUID, event.ProviderName, func(status *CheckoutStatus) {
		status.Status = statusCompleted
		status.TotalAmount = event.TotalAmount
		status.Currency = event.Currency
	})
}

func (s *service) OnCheckoutCancelled(c context.Context, topic string, event checkoutevents.CheckoutCancelled) error {
	s.logger.Log(c, event.AttemptUID, mylog.SeverityInfo, "Checkout %s cancelled", event.AttemptUID)

	return s.upsert(c, event.AttemptUID, event.ProviderName, func(status *CheckoutStatus) {
		status.Status = statusCancelled
	})
}

// upsert tolerates out-of-order delivery: a completion or cancellation that
// arrives before its start still leaves a usable record.
func (s *service) upsert(c context.Context, attemptUID string, providerName string, modify func(status *CheckoutStatus)) error {
	return s.store.RunInTransaction(c, func(c context.Context) error {
		status, found, err := s.store.Get(c, attemptUID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching status of attempt %s: %s", attemptUID, err))
		}
		if !found {
			status = CheckoutStatus{
				AttemptUID:   attemptUID,
				ProviderName: providerName,
			}
		}

		modify(&status)
		status.LastModified = s.nower.Now()

		return s.store.Put(c, attemptUID, status)
	})
}

func (s *service) getStatus(c context.Context, attemptUID string) (CheckoutStatus, error) {
	status, found, err := s.store.Get(c, attemptUID)
	if err != nil {
		return CheckoutStatus{}, myerrors.NewInternalError(fmt.Errorf("error fetching status of attempt %s: %s", attemptUID, err))
	}
	if !found {
		return CheckoutStatus{}, myerrors.NewNotFoundError(fmt.Errorf("attempt %s not found", attemptUID))
	}

	return status, nil
}

func (s *service) listStatuses(c context.Context) ([]CheckoutStatus, error) {
	statuses, err := s.store.Query(c, []mystore.Filter{}, "LastModified")
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error listing statuses: %s", err))
	}

	return statuses, nil
}
