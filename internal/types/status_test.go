package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusTransitions(t *testing.T) {
	cases := []struct {
		from    InvoiceStatus
		to      InvoiceStatus
		allowed bool
	}{
		{InvoiceStatusDraft, InvoiceStatusPending, true},
		{InvoiceStatusDraft, InvoiceStatusCancelled, true},
		{InvoiceStatusDraft, InvoiceStatusOverdue, false},
		{InvoiceStatusPending, InvoiceStatusOverdue, true},
		{InvoiceStatusPending, InvoiceStatusCancelled, true},
		{InvoiceStatusPending, InvoiceStatusDraft, false},
		{InvoiceStatusOverdue, InvoiceStatusPending, true},
		{InvoiceStatusOverdue, InvoiceStatusCancelled, true},
		{InvoiceStatusPaid, InvoiceStatusRefunded, true},
		{InvoiceStatusPaid, InvoiceStatusPending, false},
		{InvoiceStatusCancelled, InvoiceStatusPending, false},
		{InvoiceStatusRefunded, InvoiceStatusPaid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestInvoiceStatusTerminal(t *testing.T) {
	assert.True(t, InvoiceStatusCancelled.IsTerminal())
	assert.True(t, InvoiceStatusRefunded.IsTerminal())
	assert.False(t, InvoiceStatusPending.IsTerminal())
	assert.False(t, InvoiceStatusPaid.IsTerminal())
}

func TestSubscriptionStatusTransitions(t *testing.T) {
	cases := []struct {
		from    SubscriptionStatus
		to      SubscriptionStatus
		allowed bool
	}{
		{SubscriptionStatusPending, SubscriptionStatusActive, true},
		{SubscriptionStatusPending, SubscriptionStatusSuspended, false},
		{SubscriptionStatusActive, SubscriptionStatusSuspended, true},
		{SubscriptionStatusActive, SubscriptionStatusTerminated, true},
		{SubscriptionStatusActive, SubscriptionStatusActive, false},
		{SubscriptionStatusSuspended, SubscriptionStatusActive, true},
		{SubscriptionStatusSuspended, SubscriptionStatusTerminated, true},
		{SubscriptionStatusTerminated, SubscriptionStatusActive, false},
		{SubscriptionStatusTerminated, SubscriptionStatusSuspended, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTicketStatusTransitions(t *testing.T) {
	cases := []struct {
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{TicketStatusOpen, TicketStatusInProgress, true},
		{TicketStatusOpen, TicketStatusResolved, true},
		{TicketStatusOpen, TicketStatusClosed, true},
		{TicketStatusInProgress, TicketStatusOpen, true},
		{TicketStatusResolved, TicketStatusOpen, true},
		{TicketStatusResolved, TicketStatusInProgress, false},
		{TicketStatusClosed, TicketStatusOpen, false},
		{TicketStatusClosed, TicketStatusResolved, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
