package subscription

// Status is the lifecycle state of a subscription row.
type Status string

const (
	// StatusPending means payment has been initiated but not confirmed.
	StatusPending Status = "pending"
	// StatusActive means the subscription is current.
	StatusActive Status = "active"
	// StatusCanceled means the user canceled; access continues until the end
	// date, after which the row collapses back to free/active on next read.
	StatusCanceled Status = "canceled"
	// StatusPastDue means the gateway reported a failed payment.
	StatusPastDue Status = "past_due"
)

var validStatuses = map[Status]bool{
	StatusPending:  true,
	StatusActive:   true,
	StatusCanceled: true,
	StatusPastDue:  true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}
