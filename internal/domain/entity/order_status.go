// Package entity contains the core business objects of the project.
package entity

// OrderStatus is the lifecycle state of an order. Transitions are restricted
// to the table below and may only be invoked by administrators; handlers and
// UI affordances are not a security boundary, so the entity re-validates every
// requested transition itself.
//
//	pending  -> accepted | rejected
//	accepted -> delivered
//	rejected, delivered -> (terminal)
type OrderStatus string

const (
	// OrderStatusPending is the initial state of every order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusAccepted means an administrator approved the order.
	OrderStatusAccepted OrderStatus = "accepted"
	// OrderStatusRejected means an administrator declined the order. Terminal.
	OrderStatusRejected OrderStatus = "rejected"
	// OrderStatusDelivered means an accepted order reached the customer. Terminal.
	OrderStatusDelivered OrderStatus = "delivered"
)

// orderTransitions is the allowed source -> targets mapping.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusAccepted, OrderStatusRejected},
	OrderStatusAccepted:  {OrderStatusDelivered},
	OrderStatusRejected:  {},
	OrderStatusDelivered: {},
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the four known states.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]

	return ok
}

// IsTerminal reports whether no further transition is possible from this state.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether the transition table allows moving from the
// current state to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}
