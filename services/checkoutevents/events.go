package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	TopicName = "expresscheckout"

	checkoutStartedName   = TopicName + ".checkout.started"
	checkoutCompletedName = TopicName + ".checkout.completed"
	checkoutCancelledName = TopicName + ".checkout.cancelled"
)

type CheckoutStarted struct {
	AttemptUID   string
	ProviderName string
	Mode         string
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.AttemptUID
}

type CheckoutCompleted struct {
	AttemptUID   string
	ProviderName string
	TotalAmount  float64
	Currency     string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.AttemptUID
}

type CheckoutCancelled struct {
	AttemptUID   string
	ProviderName string
}

func (e CheckoutCancelled) GetEventTypeName() string {
	return checkoutCancelledName
}

func (e CheckoutCancelled) GetAggregateName() string {
	return e.AttemptUID
}

type EventService interface {
	OnCheckoutStarted(c context.Context, topic string, event CheckoutStarted) error
	OnCheckoutCompleted(c context.Context, topic string, event CheckoutCompleted) error
	OnCheckoutCancelled(c context.Context, topic string, event CheckoutCancelled) error
}

// DispatchEvent parses the payload of an envelope and calls the matching
// handler on the given service.
func DispatchEvent(c context.Context, service EventService, topic string, eventTypeName string, payload string) error {
	switch eventTypeName {
	case checkoutStartedName:
		event := CheckoutStarted{}
		err := json.Unmarshal([]byte(payload), &event)
		if err != nil {
			return fmt.Errorf("error parsing %s: %s", eventTypeName, err)
		}
		return service.OnCheckoutStarted(c, topic, event)
	case checkoutCompletedName:
		event := CheckoutCompleted{}
		err := json.Unmarshal([]byte(payload), &event)
		if err != nil {
			return fmt.Errorf("error parsing %s: %s", eventTypeName, err)
		}
		return service.OnCheckoutCompleted(c, topic, event)
	case checkoutCancelledName:
		event := CheckoutCancelled{}
		err := json.Unmarshal([]byte(payload), &event)
		if err != nil {
			return fmt.Errorf("error parsing %s: %s", eventTypeName, err)
		}
		return service.OnCheckoutCancelled(c, topic, event)
	}

	return fmt.Errorf("unknown event type %s", eventTypeName)
}
