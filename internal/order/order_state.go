package order

import "strings"

const (
	StatusPending  = "PENDING"
	StatusPaid     = "PAID"
	StatusFailed   = "FAILED"
	StatusExpired  = "EXPIRED"
	StatusRefunded = "REFUNDED"

	FulfillmentPending   = "PENDING"
	FulfillmentDelivered = "DELIVERED"
)

// transitions is the whole lifecycle. Anything not listed is a no-op.
var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusPaid:    {},
		StatusFailed:  {},
		StatusExpired: {},
	},
	StatusPaid: {
		StatusRefunded: {},
	},
	StatusFailed:   {},
	StatusExpired:  {},
	StatusRefunded: {},
}

// overrideTransitions are only reachable through the admin override.
var overrideTransitions = map[string]map[string]struct{}{
	StatusExpired: {StatusPaid: {}},
	StatusPaid:    {StatusRefunded: {}},
}

func CanTransition(from, to string) bool {
	_, ok := transitions[from][to]
	return ok
}

func canOverride(from, to string) bool {
	_, ok := overrideTransitions[from][to]
	return ok
}

// MapGatewayStatus maps a processor transaction_status (plus fraud_status
// for card captures) onto an order status. ok is false for vocabulary we do
// not know.
func MapGatewayStatus(transactionStatus, fraudStatus string) (status string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(transactionStatus)) {
	case "capture":
		if strings.EqualFold(fraudStatus, "accept") {
			return StatusPaid, true
		}
		// challenge (or anything else) waits for a manual decision at the processor
		return StatusPending, true
	case "settlement":
		return StatusPaid, true
	case "pending", "authorize":
		return StatusPending, true
	case "deny", "cancel", "failure":
		return StatusFailed, true
	case "expire":
		return StatusExpired, true
	case "refund", "partial_refund":
		return StatusRefunded, true
	}
	return "", false
}
