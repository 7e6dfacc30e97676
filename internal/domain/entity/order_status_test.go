package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo_Exhaustive(t *testing.T) {
	statuses := []OrderStatus{
		OrderStatusPending,
		OrderStatusAccepted,
		OrderStatusRejected,
		OrderStatusDelivered,
	}

	allowed := map[OrderStatus]map[OrderStatus]bool{
		OrderStatusPending: {
			OrderStatusAccepted: true,
			OrderStatusRejected: true,
		},
		OrderStatusAccepted: {
			OrderStatusDelivered: true,
		},
		OrderStatusRejected:  {},
		OrderStatusDelivered: {},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestOrderStatus_NoSelfTransitions(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusPending,
		OrderStatusAccepted,
		OrderStatusRejected,
		OrderStatusDelivered,
	} {
		assert.False(t, status.CanTransitionTo(status), "self transition %s", status)
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusAccepted.IsTerminal())
	assert.True(t, OrderStatusRejected.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusAccepted.IsValid())
	assert.True(t, OrderStatusRejected.IsValid())
	assert.True(t, OrderStatusDelivered.IsValid())

	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
	assert.False(t, OrderStatus("Pending").IsValid())
}

func TestOrderStatus_UnknownStatusTransitionsNowhere(t *testing.T) {
	unknown := OrderStatus("shipped")
	for _, to := range []OrderStatus{
		OrderStatusPending,
		OrderStatusAccepted,
		OrderStatusRejected,
		OrderStatusDelivered,
	} {
		assert.False(t, unknown.CanTransitionTo(to))
	}
}
