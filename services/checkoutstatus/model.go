package checkoutstatus

import "time"

// CheckoutStatus is the event-fed view of a single checkout attempt.
type CheckoutStatus struct {
	AttemptUID   string
	ProviderName string
	Mode         string
	Status       string
	TotalAmount  float64
	Currency     string
	LastModified time.Time
}

const (
	statusStarted   = "started"
	statusCompleted = "completed"
	statusCancelled = "cancelled"
)
