package checkoutsession

import (
	"context"
	"fmt"

	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/lib/mystore"
	"github.com/MarcGrol/expresscheckout/lib/mytime"
	"github.com/MarcGrol/expresscheckout/lib/myuuid"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
)

// Service owns the per-attempt checkout session. An attempt is addressed by
// the uid handed out by Start; operations against an unknown or finished
// attempt fail with not-found.
type Service struct {
	store  mystore.Store[shopapi.CheckoutSession]
	nower  mytime.Nower
	uuider myuuid.UUIDer
	logger mylog.Logger
}

func New(store mystore.Store[shopapi.CheckoutSession], nower mytime.Nower, uuider myuuid.UUIDer) *Service {
	return &Service{
		store:  store,
		nower:  nower,
		uuider: uuider,
		logger: mylog.New("checkoutsession"),
	}
}

// Start creates a new attempt. Mode and provider are fixed here and never
// change afterwards.
func (s *Service) Start(c context.Context, provider shopapi.Provider, mode shopapi.Mode, productID string, quantity int) (shopapi.CheckoutSession, error) {
	session := shopapi.CheckoutSession{
		AttemptUID: s.uuider.Create(),
		Provider:   provider,
		Mode:       mode,
		Phase:      shopapi.PhaseInitializing,
		ProductID:  productID,
		Quantity:   quantity,
		CreatedAt:  s.nower.Now(),
	}

	err := s.store.Put(c, session.AttemptUID, session)
	if err != nil {
		return shopapi.CheckoutSession{}, myerrors.NewInternalError(fmt.Errorf("error storing checkout attempt: %s", err))
	}

	s.logger.Log(c, session.AttemptUID, mylog.SeverityInfo, "Started %s checkout attempt %s in mode %s", provider, session.AttemptUID, mode)

	return session, nil
}

// Get returns a live attempt.
func (s *Service) Get(c context.Context, attemptUID string) (shopapi.CheckoutSession, error) {
	session, found, err := s.store.Get(c, attemptUID)
	if err != nil {
		return shopapi.CheckoutSession{}, myerrors.NewInternalError(fmt.Errorf("error fetching checkout attempt %s: %s", attemptUID, err))
	}
	if !found || session.Finished {
		return shopapi.CheckoutSession{}, myerrors.NewNotFoundError(fmt.Errorf("checkout attempt %s not found", attemptUID))
	}

	return session, nil
}

// Update applies a mutation to a live attempt within a transaction and
// returns the stored result.
func (s *Service) Update(c context.Context, attemptUID string, mutate func(session *shopapi.CheckoutSession) error) (shopapi.CheckoutSession, error) {
	updated := shopapi.CheckoutSession{}
	err := s.store.RunInTransaction(c, func(c context.Context) error {
		session, found, err := s.store.Get(c, attemptUID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching checkout attempt %s: %s", attemptUID, err))
		}
		if !found || session.Finished {
			return myerrors.NewNotFoundError(fmt.Errorf("checkout attempt %s not found", attemptUID))
		}

		err = mutate(&session)
		if err != nil {
			return err
		}

		now := s.nower.Now()
		session.LastModified = &now

		err = s.store.Put(c, attemptUID, session)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout attempt %s: %s", attemptUID, err))
		}
		updated = session

		return nil
	})
	if err != nil {
		return shopapi.CheckoutSession{}, err
	}

	return updated, nil
}

// Finish ends an attempt in the given terminal phase. Finishing an attempt
// that is already finished is a no-op.
func (s *Service) Finish(c context.Context, attemptUID string, phase shopapi.AttemptPhase) (shopapi.CheckoutSession, error) {
	finished := shopapi.CheckoutSession{}
	err := s.store.RunInTransaction(c, func(c context.Context) error {
		session, found, err := s.store.Get(c, attemptUID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching checkout attempt %s: %s", attemptUID, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("checkout attempt %s not found", attemptUID))
		}
		if session.Finished {
			finished = session
			return nil
		}

		session.Phase = phase
		session.Finished = true
		now := s.nower.Now()
		session.LastModified = &now

		err = s.store.Put(c, attemptUID, session)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout attempt %s: %s", attemptUID, err))
		}
		finished = session

		s.logger.Log(c, attemptUID, mylog.SeverityInfo, "Finished checkout attempt %s in phase %s", attemptUID, phase)

		return nil
	})
	if err != nil {
		return shopapi.CheckoutSession{}, err
	}

	return finished, nil
}
