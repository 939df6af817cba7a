package models

// allowedTransitions is keyed by canonical status only.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusNew:            {StatusPaid: true, StatusCancelled: true},
	StatusPaymentPending: {StatusPaid: true, StatusCancelled: true},
	StatusPaid:           {StatusPreparing: true, StatusShipped: true, StatusCancelled: true},
	StatusPreparing:      {StatusShipped: true, StatusDelivered: true, StatusCancelled: true},
	StatusShipped:        {StatusDelivered: true},
	StatusDelivered:      {StatusCompleted: true},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether an order may move from one status to another.
// Sub-states are compared through their canonical base status.
func CanTransition(from, to OrderStatus) bool {
	nexts := allowedTransitions[from.Canonical()]
	return nexts != nil && nexts[to.Canonical()]
}

// NextStatuses lists the known statuses reachable from s, in display order.
func NextStatuses(s OrderStatus) []OrderStatus {
	var out []OrderStatus
	for _, to := range orderStatusOrder {
		if CanTransition(s, to) {
			out = append(out, to)
		}
	}
	return out
}
